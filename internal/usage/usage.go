// Package usage attaches heuristic token and cost estimates to responses.
package usage

import (
	"math"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/registry"
)

// Tokens approximates the token count of a text as ceil(len/4). This is a
// character-length heuristic, not a real tokenizer, and must never be
// mistaken for billing-accurate accounting.
func Tokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// Cost converts a token count into a USD estimate using the per-model rate,
// rounded to 6 decimal places for display.
func Cost(tokens int, modelID string) float64 {
	raw := float64(tokens) * registry.CostPerToken(modelID)
	return math.Round(raw*1e6) / 1e6
}
