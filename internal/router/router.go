// Package router orchestrates the per-call pipeline: validate, normalize,
// dispatch, extract, estimate. Stateless across calls; the only shared data
// is the read-only registry and language tables.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/language"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/normalizer"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/provider"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/registry"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/usage"
)

// Sampling parameters are fixed per call type. Chat favours creative output
// with a large cap; translation and detection run near-deterministic, and
// detection caps output to a bare language name.
var (
	chatOptions      = provider.CallOptions{Temperature: 0.9, MaxTokens: 2048}
	translateOptions = provider.CallOptions{Temperature: 0.2, MaxTokens: 1000}
	detectOptions    = provider.CallOptions{Temperature: 0, MaxTokens: 20}
)

// Router dispatches uniform requests to the matching provider strategy.
type Router struct {
	registry  *registry.Registry
	providers map[models.ProviderID]provider.Provider
}

// New constructs a router over the registry and the provider dispatch table.
func New(reg *registry.Registry, providers map[models.ProviderID]provider.Provider) *Router {
	return &Router{
		registry:  reg,
		providers: providers,
	}
}

// resolve checks availability and model validity before any network call.
func (r *Router) resolve(id models.ProviderID, modelID string) (provider.Provider, error) {
	if !r.registry.Available(id) {
		return nil, fmt.Errorf("%w: %s", provider.ErrProviderUnavailable, id)
	}
	if !r.registry.KnownModel(id, modelID) {
		return nil, fmt.Errorf("%w: %s for provider %s", provider.ErrUnknownModel, modelID, id)
	}
	if registry.SupportsImages(modelID) {
		return nil, fmt.Errorf("%w: model %s generates images, not text", normalizer.ErrValidation, modelID)
	}
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", provider.ErrProviderUnavailable, id)
	}
	return p, nil
}

// Chat forwards a chat request and annotates the reply with usage estimates.
func (r *Router) Chat(ctx context.Context, req models.UniformChatRequest) (*models.UniformResponse, error) {
	p, err := r.resolve(req.Provider, req.Model)
	if err != nil {
		return nil, err
	}

	turns, err := normalizer.ChatTurns(req.Provider, req.History, req.Message)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := p.Chat(ctx, req.Model, turns, chatOptions)
	if err != nil {
		return nil, err
	}

	tokens := usage.Tokens(req.Message + text)
	return &models.UniformResponse{
		Text:          text,
		Provider:      req.Provider,
		Model:         req.Model,
		TokensUsed:    tokens,
		CostEstimate:  usage.Cost(tokens, req.Model),
		ElapsedMillis: time.Since(start).Milliseconds(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		RequestID:     uuid.NewString(),
	}, nil
}

// Translate shapes the request as a one-turn disguised chat call.
func (r *Router) Translate(ctx context.Context, req models.UniformTranslateRequest) (*models.TranslationResult, error) {
	p, err := r.resolve(req.Provider, req.Model)
	if err != nil {
		return nil, err
	}

	prompt, err := normalizer.TranslationPrompt(req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		return nil, err
	}
	turns := []models.ChatTurn{{Role: models.RoleUser, Content: prompt}}

	start := time.Now()
	text, err := p.Chat(ctx, req.Model, turns, translateOptions)
	if err != nil {
		return nil, err
	}
	translated := strings.TrimSpace(text)

	source := strings.TrimSpace(req.SourceLang)
	if source == "" {
		source = normalizer.AutoSource
	}

	tokens := usage.Tokens(req.Text + translated)
	return &models.TranslationResult{
		TranslatedText: translated,
		SourceLang:     source,
		TargetLang:     req.TargetLang,
		Provider:       req.Provider,
		Model:          req.Model,
		TokensUsed:     tokens,
		CostEstimate:   usage.Cost(tokens, req.Model),
		ElapsedMillis:  time.Since(start).Milliseconds(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		RequestID:      uuid.NewString(),
	}, nil
}

// DetectLanguage asks the model to name the text's language and maps the
// free-text answer back to a directory code, "unknown" when unmatched.
func (r *Router) DetectLanguage(ctx context.Context, id models.ProviderID, modelID, text string) (*models.DetectionResult, error) {
	p, err := r.resolve(id, modelID)
	if err != nil {
		return nil, err
	}

	prompt, err := normalizer.DetectionPrompt(text)
	if err != nil {
		return nil, err
	}
	turns := []models.ChatTurn{{Role: models.RoleUser, Content: prompt}}

	answer, err := p.Chat(ctx, modelID, turns, detectOptions)
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)

	return &models.DetectionResult{
		LanguageName: answer,
		LanguageCode: language.CodeForName(answer),
		Provider:     id,
		Model:        modelID,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		RequestID:    uuid.NewString(),
	}, nil
}

// ListModels returns the catalogs of every available provider.
func (r *Router) ListModels() map[models.ProviderID]map[string]string {
	out := make(map[models.ProviderID]map[string]string)
	for _, id := range models.AllProviders() {
		if !r.registry.Available(id) {
			continue
		}
		out[id] = r.registry.Catalog(id)
	}
	return out
}

// ListLanguages returns the full language directory.
func (r *Router) ListLanguages() map[string]string {
	return language.All()
}

// Health reports credential availability per provider, not live reachability.
func (r *Router) Health() map[models.ProviderID]bool {
	out := make(map[models.ProviderID]bool, len(models.AllProviders()))
	for _, id := range models.AllProviders() {
		out[id] = r.registry.Available(id)
	}
	return out
}
