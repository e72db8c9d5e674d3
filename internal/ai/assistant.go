package ai

import "context"

// Generator performs a single stateless chat exchange with a language model
// and returns the assistant's text.
type Generator interface {
	GenerateContent(ctx context.Context, system, user string) (string, error)
	Model() string
}
