package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
)

// Default upstream endpoints. A YAML file may override any of them, which is
// how tests point providers at local fakes.
const (
	defaultPort = 8080

	defaultOpenAIBaseURL     = "https://api.openai.com/v1"
	defaultAnthropicBaseURL  = "https://api.anthropic.com"
	defaultDeepSeekBaseURL   = "https://api.deepseek.com"
	defaultPerplexityBaseURL = "https://api.perplexity.ai"
	defaultAdobeBaseURL      = "https://firefly-api.adobe.io/v1"
	defaultCanvaBaseURL      = "https://api.canva.com/v1"

	defaultAzureAPIVersion = "2024-02-15-preview"
)

// Config is the process-wide configuration, assembled once at startup and
// read-only afterwards. Credentials come from the environment; everything else
// has defaults that an optional YAML file may override.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Providers ProvidersConfig `yaml:"providers"`
}

// ServerConfig defines listener configuration.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ProvidersConfig catalogues the upstream providers.
type ProvidersConfig struct {
	OpenAI     ProviderConfig `yaml:"openai"`
	Anthropic  ProviderConfig `yaml:"anthropic"`
	DeepSeek   ProviderConfig `yaml:"deepseek"`
	Perplexity ProviderConfig `yaml:"perplexity"`
	Microsoft  AzureConfig    `yaml:"microsoft"`
	Adobe      ProviderConfig `yaml:"adobe"`
	Canva      ProviderConfig `yaml:"canva"`
}

// ProviderConfig captures routing and authentication for one provider.
// APIKey is never read from YAML.
type ProviderConfig struct {
	APIKey  string            `yaml:"-"`
	BaseURL string            `yaml:"base_url"`
	Headers map[string]string `yaml:"headers"`
}

// AzureConfig is the Microsoft variant: the endpoint and deployment name are
// account-specific rather than a fixed public base URL.
type AzureConfig struct {
	APIKey     string `yaml:"-"`
	Endpoint   string `yaml:"endpoint"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
}

// Load assembles the configuration from defaults, an optional YAML file and
// environment credentials, then validates the result. An empty path skips the
// file entirely.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		data, err := os.ReadFile(absPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", absPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", absPath, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Server: ServerConfig{Port: defaultPort},
		Providers: ProvidersConfig{
			OpenAI:     ProviderConfig{BaseURL: defaultOpenAIBaseURL},
			Anthropic:  ProviderConfig{BaseURL: defaultAnthropicBaseURL},
			DeepSeek:   ProviderConfig{BaseURL: defaultDeepSeekBaseURL},
			Perplexity: ProviderConfig{BaseURL: defaultPerplexityBaseURL},
			Microsoft:  AzureConfig{APIVersion: defaultAzureAPIVersion},
			Adobe:      ProviderConfig{BaseURL: defaultAdobeBaseURL},
			Canva:      ProviderConfig{BaseURL: defaultCanvaBaseURL},
		},
	}
}

func (c *Config) applyEnv() {
	c.Providers.OpenAI.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	c.Providers.Anthropic.APIKey = strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	c.Providers.DeepSeek.APIKey = strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY"))
	c.Providers.Perplexity.APIKey = strings.TrimSpace(os.Getenv("PERPLEXITY_API_KEY"))
	c.Providers.Adobe.APIKey = strings.TrimSpace(os.Getenv("ADOBE_API_KEY"))
	c.Providers.Canva.APIKey = strings.TrimSpace(os.Getenv("CANVA_API_KEY"))

	c.Providers.Microsoft.APIKey = strings.TrimSpace(os.Getenv("AZURE_OPENAI_API_KEY"))
	if v := strings.TrimSpace(os.Getenv("AZURE_OPENAI_ENDPOINT")); v != "" {
		c.Providers.Microsoft.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("AZURE_OPENAI_DEPLOYMENT")); v != "" {
		c.Providers.Microsoft.Deployment = v
	}
	if v := strings.TrimSpace(os.Getenv("AZURE_OPENAI_API_VERSION")); v != "" {
		c.Providers.Microsoft.APIVersion = v
	}
}

// Validate performs sanity checks on the configuration. A missing credential
// is not an error; the provider is simply reported as unavailable.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid TCP port, got %d", c.Server.Port)
	}

	named := map[string]ProviderConfig{
		"openai":     c.Providers.OpenAI,
		"anthropic":  c.Providers.Anthropic,
		"deepseek":   c.Providers.DeepSeek,
		"perplexity": c.Providers.Perplexity,
		"adobe":      c.Providers.Adobe,
		"canva":      c.Providers.Canva,
	}
	for name, pc := range named {
		if strings.TrimSpace(pc.BaseURL) == "" {
			return fmt.Errorf("provider %s: base_url must not be empty", name)
		}
		for headerKey := range pc.Headers {
			if !isCanonicalHTTPHeader(headerKey) {
				return fmt.Errorf("provider %s: header %q is not a valid canonical HTTP header", name, headerKey)
			}
		}
	}

	if c.Providers.Microsoft.APIKey != "" {
		if strings.TrimSpace(c.Providers.Microsoft.Endpoint) == "" {
			return fmt.Errorf("provider microsoft: AZURE_OPENAI_ENDPOINT is required when a key is set")
		}
		if strings.TrimSpace(c.Providers.Microsoft.Deployment) == "" {
			return fmt.Errorf("provider microsoft: AZURE_OPENAI_DEPLOYMENT is required when a key is set")
		}
	}

	return nil
}

// Configured reports whether the provider's required credentials were present
// at startup. No network check is performed; a stale key only surfaces when a
// call fails.
func (c Config) Configured(id models.ProviderID) bool {
	switch id {
	case models.ProviderOpenAI:
		return c.Providers.OpenAI.APIKey != ""
	case models.ProviderAnthropic:
		return c.Providers.Anthropic.APIKey != ""
	case models.ProviderDeepSeek:
		return c.Providers.DeepSeek.APIKey != ""
	case models.ProviderPerplexity:
		return c.Providers.Perplexity.APIKey != ""
	case models.ProviderMicrosoft:
		m := c.Providers.Microsoft
		return m.APIKey != "" && m.Endpoint != "" && m.Deployment != ""
	case models.ProviderAdobe:
		return c.Providers.Adobe.APIKey != ""
	case models.ProviderCanva:
		return c.Providers.Canva.APIKey != ""
	}
	return false
}

func isCanonicalHTTPHeader(header string) bool {
	if header == "" {
		return false
	}

	for _, r := range header {
		if !(r == '-' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return false
		}
	}
	return true
}
