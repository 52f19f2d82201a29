package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
)

// ErrProviderUnavailable indicates the provider's credential was not
// configured at startup.
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrUnknownModel indicates the requested model is not in the provider's catalog.
var ErrUnknownModel = errors.New("unknown model")

// CallOptions carries the sampling parameters for one upstream call. They are
// fixed per call type by the dispatcher, never caller-configurable.
type CallOptions struct {
	Temperature float64
	MaxTokens   int
}

// Provider executes a shaped chat request against one upstream vendor and
// extracts the plain text result from its response envelope.
type Provider interface {
	Name() string
	Chat(ctx context.Context, modelID string, turns []models.ChatTurn, opts CallOptions) (string, error)
}

// CallError reports an upstream failure: a network error, a non-2xx status or
// a thrown client error. Surfaced once per request, never retried.
type CallError struct {
	Provider string
	Status   int
	Message  string
}

func (e *CallError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s call failed (status %d): %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s call failed: %s", e.Provider, e.Message)
}

// Placeholder is the fixed string substituted when a provider's response body
// lacks the expected text field. Degraded success, not an error: the caller
// still gets a 200 with a visible placeholder instead of a hard failure.
func Placeholder(providerName string) string {
	return providerName + " response unavailable"
}
