// Package advisory asks an LLM which tests to run. Its answers are
// suggestions only; callers validate every path they get back.
package advisory

import "context"

// Response is the raw outcome of one advisory request.
type Response struct {
	Text   string
	Status int // HTTP status, 0 when no response was received
}

// Suggester proposes test paths for a prompt.
type Suggester interface {
	Suggest(ctx context.Context, prompt string) (Response, error)
	Name() string
}
