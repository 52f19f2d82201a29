// Package normalizer maps uniform chat/translate/detect inputs onto the turn
// sequences and instruction strings providers are called with.
package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/language"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
)

// ErrValidation indicates bad or missing input, detected before any network
// call is attempted.
var ErrValidation = errors.New("invalid request")

// historyLimit caps how much conversation history is forwarded upstream.
// Fixed invariant, not configurable per call.
const historyLimit = 10

// AutoSource is the sentinel source-language code that lets the model infer
// the source language itself.
const AutoSource = "auto"

// ChatTurns builds the ordered turn sequence for a chat call: history
// truncated to the most recent entries, then the new user message.
//
// Perplexity's message array rejects system-role turns in this position, so
// for that provider any system turns are filtered out first. An explicit
// provider rule, not an oversight.
func ChatTurns(id models.ProviderID, history []models.ChatTurn, message string) ([]models.ChatTurn, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return nil, fmt.Errorf("%w: message must not be empty", ErrValidation)
	}

	recent := history
	if len(recent) > historyLimit {
		recent = recent[len(recent)-historyLimit:]
	}

	turns := make([]models.ChatTurn, 0, len(recent)+1)
	for _, turn := range recent {
		if id == models.ProviderPerplexity && turn.Role == models.RoleSystem {
			continue
		}
		turns = append(turns, turn)
	}

	return append(turns, models.ChatTurn{Role: models.RoleUser, Content: msg}), nil
}

// TranslationPrompt builds the single natural-language instruction that turns
// a translation request into a one-turn chat call. When the source code is
// AutoSource the instruction names only the target language; otherwise it
// names both. The text to translate is always embedded verbatim, quoted.
func TranslationPrompt(text, sourceCode, targetCode string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: text must not be empty", ErrValidation)
	}

	targetCode = strings.TrimSpace(targetCode)
	if targetCode == "" {
		return "", fmt.Errorf("%w: target language is required", ErrValidation)
	}
	targetName := language.Name(targetCode)
	if targetName == "" {
		return "", fmt.Errorf("%w: unsupported target language %q", ErrValidation, targetCode)
	}

	sourceCode = strings.TrimSpace(sourceCode)
	if sourceCode == "" || sourceCode == AutoSource {
		return fmt.Sprintf(
			"Translate the following text to %s. Respond with only the translation and nothing else: %q",
			targetName, trimmed,
		), nil
	}

	sourceName := language.Name(sourceCode)
	if sourceName == "" {
		return "", fmt.Errorf("%w: unsupported source language %q", ErrValidation, sourceCode)
	}
	if sourceCode == targetCode {
		return "", fmt.Errorf("%w: source and target language must differ", ErrValidation)
	}

	return fmt.Sprintf(
		"Translate the following text from %s to %s. Respond with only the translation and nothing else: %q",
		sourceName, targetName, trimmed,
	), nil
}

// DetectionPrompt builds the one-turn instruction asking for the text's
// language as a bare English name. The answer is matched back against the
// language directory by the caller.
func DetectionPrompt(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: text must not be empty", ErrValidation)
	}

	return fmt.Sprintf(
		"Identify the language of the following text. Respond with only the English name of the language, no other words: %q",
		trimmed,
	), nil
}
