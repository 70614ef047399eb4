// Package llm abstracts the external generative text service behind a single
// completion operation, so any compliant provider can serve extraction and
// tests can substitute a deterministic stub.
package llm

import (
	"context"
	"time"
)

// CompletionService is the one operation the extraction pipeline imposes on
// an LLM provider: return text that is, after light cleanup, a parseable
// JSON array matching the event schema.
type CompletionService interface {
	// Complete sends a prompt and returns the raw model reply.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider for logging.
	Name() string
}

// Config holds provider construction parameters.
type Config struct {
	// Provider selects the implementation: gemini, openai, or compatible.
	Provider string
	// APIKey is the provider credential.
	APIKey string
	// Model is the provider-specific model identifier.
	Model string
	// BaseURL overrides the provider's default endpoint.
	BaseURL string
	// Timeout bounds a single completion call. One attempt, no retry:
	// extraction requests fail fast and the caller decides what to resend.
	Timeout time.Duration
}
