package index

import (
	"context"
	"fmt"

	"docqa/internal/adapter/vectorstore"
	"docqa/internal/domain"
	"docqa/internal/port"
)

// VectorIndex retrieves chunks by embedding similarity. Chunk embeddings are
// computed once at build time; queries embed the query text and run a
// nearest-neighbor search over the in-memory store.
type VectorIndex struct {
	embedder port.Embedder
	store    *vectorstore.Memory
}

// BuildVectorIndex embeds every chunk and loads the vectors into an
// in-memory store. When a cache is supplied, embeddings for unchanged chunk
// text are reused instead of re-requested.
func BuildVectorIndex(ctx context.Context, chunks []domain.Chunk, embedder port.Embedder, cache port.EmbeddingCache) (*VectorIndex, error) {
	vectors := make([][]float64, len(chunks))
	model := embedder.ModelName()

	var missing []string
	var missingIdx []int
	for i, ch := range chunks {
		if cache != nil {
			if vec, ok := cache.Get(model, ch.Text); ok {
				vectors[i] = vec
				continue
			}
		}
		missing = append(missing, ch.Text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) > 0 {
		embedded, err := embedder.Embed(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("embedding corpus: %w", err)
		}
		if len(embedded) != len(missing) {
			return nil, fmt.Errorf("embedding corpus: got %d vectors for %d texts", len(embedded), len(missing))
		}
		for j, vec := range embedded {
			i := missingIdx[j]
			vectors[i] = vec
			if cache != nil {
				if err := cache.Put(model, chunks[i].Text, vec); err != nil {
					return nil, fmt.Errorf("caching embedding: %w", err)
				}
			}
		}
	}

	store := vectorstore.NewMemory()
	if err := store.Add(chunks, vectors); err != nil {
		return nil, err
	}
	return &VectorIndex{embedder: embedder, store: store}, nil
}

// Retrieve returns the top-k chunks by descending cosine similarity to the
// embedded query.
func (ix *VectorIndex) Retrieve(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	embedded, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(embedded) == 0 {
		return nil, fmt.Errorf("embedding query: empty result")
	}
	return ix.store.Search(embedded[0], k), nil
}

// Len returns the number of indexed chunks.
func (ix *VectorIndex) Len() int { return ix.store.Len() }
