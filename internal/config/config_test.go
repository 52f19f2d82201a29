package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "DEEPSEEK_API_KEY", "PERPLEXITY_API_KEY",
		"AZURE_OPENAI_API_KEY", "AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_DEPLOYMENT",
		"AZURE_OPENAI_API_VERSION", "ADOBE_API_KEY", "CANVA_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearProviderEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultOpenAIBaseURL, cfg.Providers.OpenAI.BaseURL)
	assert.Equal(t, defaultAzureAPIVersion, cfg.Providers.Microsoft.APIVersion)

	for _, id := range models.AllProviders() {
		assert.False(t, cfg.Configured(id), "provider %s should be unconfigured without credentials", id)
	}
}

func TestLoadAppliesEnvCredentials(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AZURE_OPENAI_API_KEY", "azure-key")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT", "gpt-4")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Configured(models.ProviderOpenAI))
	assert.True(t, cfg.Configured(models.ProviderMicrosoft))
	assert.False(t, cfg.Configured(models.ProviderAnthropic))
}

func TestLoadYAMLOverrides(t *testing.T) {
	clearProviderEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
providers:
  openai:
    base_url: http://localhost:9999/v1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:9999/v1", cfg.Providers.OpenAI.BaseURL)
	// Untouched providers keep their defaults.
	assert.Equal(t, defaultAnthropicBaseURL, cfg.Providers.Anthropic.BaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	clearProviderEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearProviderEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Server.Port = 0
	require.Error(t, cfg.Validate())

	cfg.Server.Port = 8080
	cfg.Providers.OpenAI.BaseURL = ""
	require.Error(t, cfg.Validate())
}

func TestValidateAzureRequiresEndpointAndDeployment(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("AZURE_OPENAI_API_KEY", "azure-key")

	_, err := Load("")
	require.Error(t, err)

	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	_, err = Load("")
	require.Error(t, err)

	t.Setenv("AZURE_OPENAI_DEPLOYMENT", "gpt-4")
	_, err = Load("")
	require.NoError(t, err)
}

func TestValidateRejectsBadHeader(t *testing.T) {
	clearProviderEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Providers.OpenAI.Headers = map[string]string{"Bad Header!": "x"}
	require.Error(t, cfg.Validate())
}
