package port

import "context"

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)

	// ModelName returns the name of the embedding model.
	ModelName() string
}

// EmbeddingCache memoizes embeddings between process runs so unchanged
// chunks are not re-embedded. Implementations key on model + text.
type EmbeddingCache interface {
	Get(model, text string) ([]float64, bool)
	Put(model, text string, vector []float64) error
	Close() error
}
