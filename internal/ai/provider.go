package ai

import "context"

// Provider sends a prompt to a text-generation endpoint and returns the raw
// text response. Used only by FitScorer; not exported to the rest of the
// system.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
