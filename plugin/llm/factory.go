package llm

import (
	"github.com/pkg/errors"
)

// NewCompletionService creates a CompletionService for the configured provider.
func NewCompletionService(cfg *Config) (CompletionService, error) {
	if cfg == nil {
		return nil, errors.New("nil LLM config")
	}

	switch cfg.Provider {
	case "gemini", "":
		return NewGeminiClient(cfg)
	case "openai", "compatible":
		return NewOpenAIClient(cfg)
	default:
		return nil, errors.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
