package port

import (
	"context"

	"docqa/internal/domain"
)

// Retriever is the single capability both index backends implement.
type Retriever interface {
	// Retrieve returns the top-k chunks for the query, best first.
	Retrieve(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error)
}
