package index

import (
	"context"
	"sort"

	"docqa/internal/adapter/analyzer"
	"docqa/internal/domain"
)

// LexicalIndex holds the chunk collection as a flat list scored at query
// time by Jaccard overlap of word-token sets. It needs no external service
// and is fully deterministic.
type LexicalIndex struct {
	chunks    []domain.Chunk
	tokenSets []map[string]struct{}
}

// NewLexicalIndex builds a lexical index over the chunks. Token sets are
// computed once here; the index is read-only afterwards.
func NewLexicalIndex(chunks []domain.Chunk) *LexicalIndex {
	sets := make([]map[string]struct{}, len(chunks))
	for i, ch := range chunks {
		sets[i] = analyzer.TokenSet(ch.Text)
	}
	return &LexicalIndex{chunks: chunks, tokenSets: sets}
}

// Retrieve returns the top-k chunks by descending Jaccard score. Ties keep
// the original chunk order.
func (ix *LexicalIndex) Retrieve(_ context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	queryTokens := analyzer.TokenSet(query)

	scored := make([]domain.ScoredChunk, len(ix.chunks))
	for i, ch := range ix.chunks {
		scored[i] = domain.ScoredChunk{
			Chunk:  ch,
			Score:  analyzer.Jaccard(queryTokens, ix.tokenSets[i]),
			Scored: true,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Len returns the number of indexed chunks.
func (ix *LexicalIndex) Len() int { return len(ix.chunks) }
