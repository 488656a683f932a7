package port

import "docqa/internal/domain"

type Chunker interface {
	Split(doc domain.Document) []domain.Chunk
}
