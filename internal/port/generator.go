package port

import "context"

// Generator words an answer from assembled context. Only the vector-mode
// pipeline uses it; free mode composes answers locally.
type Generator interface {
	// Generate produces an answer constrained by a system instruction.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the generation model.
	ModelName() string
}
