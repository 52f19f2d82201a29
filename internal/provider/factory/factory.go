package factory

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/config"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/provider"
	anthropicProvider "github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/provider/anthropic"
	azureProvider "github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/provider/azure"
	openaiProvider "github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/provider/openai"
)

const (
	defaultHTTPTimeout     = 60 * time.Second
	defaultDialTimeout     = 10 * time.Second
	defaultKeepAlive       = 30 * time.Second
	defaultIdleConnTimeout = 90 * time.Second
)

// BuildProviders constructs the full dispatch table from configuration. Every
// provider is built regardless of credentials; availability gating in the
// registry decides which ones may actually be called.
//
// DeepSeek, Perplexity, Adobe and Canva all speak the OpenAI-compatible wire
// format, so they reuse the openai adapter under their own identity.
func BuildProviders(cfg config.Config) (map[models.ProviderID]provider.Provider, error) {
	client := newHTTPClient(defaultHTTPTimeout)

	table := make(map[models.ProviderID]provider.Provider, 7)

	openAICompatible := []struct {
		id models.ProviderID
		pc config.ProviderConfig
	}{
		{models.ProviderOpenAI, cfg.Providers.OpenAI},
		{models.ProviderDeepSeek, cfg.Providers.DeepSeek},
		{models.ProviderPerplexity, cfg.Providers.Perplexity},
		{models.ProviderAdobe, cfg.Providers.Adobe},
		{models.ProviderCanva, cfg.Providers.Canva},
	}
	for _, entry := range openAICompatible {
		p, err := openaiProvider.New(string(entry.id), entry.pc, client)
		if err != nil {
			return nil, fmt.Errorf("initialise %s provider: %w", entry.id, err)
		}
		table[entry.id] = p
	}

	anthropic, err := anthropicProvider.New(string(models.ProviderAnthropic), cfg.Providers.Anthropic, client)
	if err != nil {
		return nil, fmt.Errorf("initialise anthropic provider: %w", err)
	}
	table[models.ProviderAnthropic] = anthropic

	azure, err := azureProvider.New(string(models.ProviderMicrosoft), cfg.Providers.Microsoft, client)
	if err != nil {
		return nil, fmt.Errorf("initialise microsoft provider: %w", err)
	}
	table[models.ProviderMicrosoft] = azure

	return table, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: defaultDialTimeout, KeepAlive: defaultKeepAlive}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          50,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
