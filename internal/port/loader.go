package port

import "docqa/internal/domain"

// Loader discovers and reads corpus documents.
type Loader interface {
	// Load returns the documents under dir matching the comma-separated
	// glob patterns. It never fails because of a single bad file.
	Load(dir, patterns string) ([]domain.Document, error)
}
