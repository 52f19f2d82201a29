package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/config"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/provider"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Provider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New("openai", config.ProviderConfig{
		APIKey:  "sk-test",
		BaseURL: srv.URL,
	}, srv.Client())
	require.NoError(t, err)
	return p, srv
}

func TestChatExtractsFirstChoice(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hi there!"}}]}`))
	})

	turns := []models.ChatTurn{
		{Role: models.RoleSystem, Content: "be brief"},
		{Role: models.RoleUser, Content: "hello"},
	}
	text, err := p.Chat(context.Background(), "gpt-4", turns, provider.CallOptions{Temperature: 0.9, MaxTokens: 2048})
	require.NoError(t, err)

	assert.Equal(t, "Hi there!", text)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4", gotPayload["model"])
	assert.Equal(t, 0.9, gotPayload["temperature"])
	assert.Equal(t, float64(2048), gotPayload["max_tokens"])

	messages, ok := gotPayload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
}

func TestChatPlaceholderOnMissingText(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"choices":[]}`},
		{name: "missing field", body: `{"id":"chatcmpl-1"}`},
		{name: "empty content", body: `{"choices":[{"message":{"content":"  "}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			text, err := p.Chat(context.Background(), "gpt-4", []models.ChatTurn{{Role: models.RoleUser, Content: "hi"}}, provider.CallOptions{})
			require.NoError(t, err)
			assert.Equal(t, "openai response unavailable", text)
		})
	}
}

func TestChatUpstreamError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	})

	_, err := p.Chat(context.Background(), "gpt-4", []models.ChatTurn{{Role: models.RoleUser, Content: "hi"}}, provider.CallOptions{})

	var callErr *provider.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusUnauthorized, callErr.Status)
	assert.Contains(t, callErr.Message, "Incorrect API key")
	assert.Equal(t, "openai", callErr.Provider)
}

func TestChatNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := srv.Client()
	srv.Close()

	p, err := New("deepseek", config.ProviderConfig{APIKey: "k", BaseURL: srv.URL}, client)
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), "deepseek-chat", []models.ChatTurn{{Role: models.RoleUser, Content: "hi"}}, provider.CallOptions{})

	var callErr *provider.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, 0, callErr.Status)
}

func TestNewRejectsEmptyBaseURL(t *testing.T) {
	_, err := New("openai", config.ProviderConfig{APIKey: "k"}, http.DefaultClient)
	require.Error(t, err)
}

func TestExtraHeadersForwarded(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Org-Id")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	t.Cleanup(srv.Close)

	p, err := New("openai", config.ProviderConfig{
		APIKey:  "k",
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Org-Id": "org-123"},
	}, srv.Client())
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), "gpt-4", []models.ChatTurn{{Role: models.RoleUser, Content: "hi"}}, provider.CallOptions{})
	require.NoError(t, err)
	assert.Equal(t, "org-123", gotHeader)
}
