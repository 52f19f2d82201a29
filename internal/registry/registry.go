package registry

import (
	"strings"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/config"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
)

// DefaultCostPerToken is applied to any model id missing from the cost table.
// Deliberate: new or unusual model ids must never abort cost reporting, at the
// price of a less accurate estimate.
const DefaultCostPerToken = 2e-6

// catalog maps each provider to its supported models. Assembled once at
// process start and read-only afterwards.
var catalog = map[models.ProviderID][]models.CatalogEntry{
	models.ProviderOpenAI: {
		{ID: "gpt-4", DisplayName: "GPT-4"},
		{ID: "gpt-4-turbo", DisplayName: "GPT-4 Turbo"},
		{ID: "gpt-4o", DisplayName: "GPT-4o"},
		{ID: "gpt-3.5-turbo", DisplayName: "GPT-3.5 Turbo"},
		{ID: "dall-e-3", DisplayName: "DALL-E 3"},
	},
	models.ProviderAnthropic: {
		{ID: "claude-3-opus-20240229", DisplayName: "Claude 3 Opus"},
		{ID: "claude-3-sonnet-20240229", DisplayName: "Claude 3 Sonnet"},
		{ID: "claude-3-haiku-20240307", DisplayName: "Claude 3 Haiku"},
		{ID: "claude-3-5-sonnet-20240620", DisplayName: "Claude 3.5 Sonnet"},
	},
	models.ProviderDeepSeek: {
		{ID: "deepseek-chat", DisplayName: "DeepSeek Chat"},
		{ID: "deepseek-reasoner", DisplayName: "DeepSeek Reasoner"},
	},
	models.ProviderPerplexity: {
		{ID: "sonar", DisplayName: "Sonar"},
		{ID: "sonar-pro", DisplayName: "Sonar Pro"},
		{ID: "sonar-reasoning", DisplayName: "Sonar Reasoning"},
	},
	models.ProviderMicrosoft: {
		{ID: "gpt-4", DisplayName: "Azure GPT-4"},
		{ID: "gpt-35-turbo", DisplayName: "Azure GPT-3.5 Turbo"},
	},
	models.ProviderAdobe: {
		{ID: "firefly-text", DisplayName: "Firefly Text"},
		{ID: "firefly-image", DisplayName: "Firefly Image"},
	},
	models.ProviderCanva: {
		{ID: "magic-write", DisplayName: "Magic Write"},
	},
}

// costPerToken holds USD-per-token figures for models with published pricing.
// Anything absent falls back to DefaultCostPerToken.
var costPerToken = map[string]float64{
	"gpt-4":                      3e-5,
	"gpt-4-turbo":                1e-5,
	"gpt-4o":                     5e-6,
	"gpt-3.5-turbo":              1.5e-6,
	"claude-3-opus-20240229":     1.5e-5,
	"claude-3-sonnet-20240229":   3e-6,
	"claude-3-haiku-20240307":    2.5e-7,
	"claude-3-5-sonnet-20240620": 3e-6,
	"deepseek-chat":              2.8e-7,
	"deepseek-reasoner":          5.5e-7,
	"sonar":                      1e-6,
	"sonar-pro":                  3e-6,
	"gpt-35-turbo":               1.5e-6,
}

// Registry answers availability and model-validity questions over the static
// catalog plus the startup configuration. Pure reads, safe for concurrent use.
type Registry struct {
	cfg config.Config
}

// New constructs a registry bound to the startup configuration.
func New(cfg config.Config) *Registry {
	return &Registry{cfg: cfg}
}

// Available reports whether the provider's credentials were configured.
func (r *Registry) Available(id models.ProviderID) bool {
	return id.Valid() && r.cfg.Configured(id)
}

// Catalog returns the model id to display name mapping for a provider.
// Unconfigured providers yield an empty map.
func (r *Registry) Catalog(id models.ProviderID) map[string]string {
	out := make(map[string]string)
	if !r.Available(id) {
		return out
	}
	for _, entry := range catalog[id] {
		out[entry.ID] = entry.DisplayName
	}
	return out
}

// KnownModel reports whether the model id belongs to the provider's catalog.
func (r *Registry) KnownModel(id models.ProviderID, modelID string) bool {
	for _, entry := range catalog[id] {
		if entry.ID == modelID {
			return true
		}
	}
	return false
}

// CostPerToken returns the USD-per-token figure for a model, falling back to
// DefaultCostPerToken for unrecognized ids.
func CostPerToken(modelID string) float64 {
	if cost, ok := costPerToken[modelID]; ok {
		return cost
	}
	return DefaultCostPerToken
}

// SupportsImages reports whether the model id signals image generation.
// A pattern check on the id, not a capability probe.
func SupportsImages(modelID string) bool {
	id := strings.ToLower(modelID)
	for _, marker := range []string{"image", "dall-e"} {
		if strings.Contains(id, marker) {
			return true
		}
	}
	return false
}
