package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptBuildEmbedsInputs(t *testing.T) {
	b := NewPromptBuilder()

	prompt := b.Build("Lunch tomorrow at 1pm", "2025-04-23 18:04:05", "Asia/Kolkata")

	assert.Contains(t, prompt, "CURRENT DATETIME: 2025-04-23 18:04:05")
	assert.Contains(t, prompt, "USER TIMEZONE: Asia/Kolkata")
	assert.Contains(t, prompt, "USER INPUT:\nLunch tomorrow at 1pm")
}

func TestPromptBuildDeterministic(t *testing.T) {
	b := NewPromptBuilder()

	first := b.Build("dinner at 8", "2025-04-24 10:00:00", "Europe/Berlin")
	second := b.Build("dinner at 8", "2025-04-24 10:00:00", "Europe/Berlin")

	assert.Equal(t, first, second)
}

func TestPromptBuildTrimsInput(t *testing.T) {
	b := NewPromptBuilder()

	prompt := b.Build("  dinner at 8  \n", "2025-04-24 10:00:00", "Asia/Kolkata")

	assert.Contains(t, prompt, "USER INPUT:\ndinner at 8\n")
	assert.NotContains(t, prompt, "USER INPUT:\n  dinner")
}

func TestPromptCarriesContract(t *testing.T) {
	prompt := NewPromptBuilder().Build("x", "2025-04-24 10:00:00", "Asia/Kolkata")

	// The stamp instruction, quoted with escaped newline, must survive any
	// template edit verbatim; the normalizer depends on it.
	assert.Contains(t, prompt, `"------\nEvent created by https://calevents.vercel.app "`)
	assert.Contains(t, prompt, "return an empty JSON array: []")
	assert.Contains(t, prompt, "never just 'Z'")
	assert.Contains(t, prompt, "one for check-in, one for check-out")
	assert.Contains(t, prompt, "within 6 hours")

	// Exactly one input slot: the user text appears once, at the end.
	assert.Equal(t, 1, strings.Count(prompt, "USER INPUT:"))
}
