// Package openai implements the OpenAI chat-completions wire format. The
// same adapter serves every OpenAI-compatible vendor (DeepSeek, Perplexity,
// Adobe, Canva) under its own name, base URL and headers.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/config"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/provider"
)

const (
	contentTypeJSON = "application/json"
	userAgent       = "llm-platform/0.1"
)

// Provider issues chat-completions calls with bearer authentication.
type Provider struct {
	name    string
	apiKey  string
	headers map[string]string
	client  *http.Client
	chatURL string
}

// New creates an adapter for an OpenAI-compatible endpoint.
func New(name string, cfg config.ProviderConfig, client *http.Client) (*Provider, error) {
	if client == nil {
		return nil, errors.New("http client must not be nil")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("base url must not be empty")
	}

	return &Provider{
		name:    name,
		apiKey:  cfg.APIKey,
		headers: cfg.Headers,
		client:  client,
		chatURL: baseURL + "/chat/completions",
	}, nil
}

func (p *Provider) Name() string {
	return p.name
}

// Chat posts the turn sequence and extracts the first choice's message
// content. A response without that field yields the provider placeholder.
func (p *Provider) Chat(ctx context.Context, modelID string, turns []models.ChatTurn, opts provider.CallOptions) (string, error) {
	payload := chatPayload{
		Model:       modelID,
		Messages:    toWireMessages(turns),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.chatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("construct request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	for k, v := range p.headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &provider.CallError{Provider: p.name, Message: err.Error()}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		return "", parseAPIError(p.name, httpResp)
	}

	var resp chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", &provider.CallError{Provider: p.name, Status: httpResp.StatusCode, Message: "decode response: " + err.Error()}
	}

	return resp.extractText(p.name), nil
}

type chatPayload struct {
	Model       string        `json:"model,omitempty"`
	Messages    []wireMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toWireMessages(turns []models.ChatTurn) []wireMessage {
	out := make([]wireMessage, 0, len(turns))
	for _, turn := range turns {
		out = append(out, wireMessage{Role: turn.Role, Content: turn.Content})
	}
	return out
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (r chatResponse) extractText(providerName string) string {
	if len(r.Choices) == 0 {
		return provider.Placeholder(providerName)
	}
	text := strings.TrimSpace(r.Choices[0].Message.Content)
	if text == "" {
		return provider.Placeholder(providerName)
	}
	return text
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func parseAPIError(providerName string, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return &provider.CallError{Provider: providerName, Status: resp.StatusCode, Message: "failed to read error body"}
	}

	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &provider.CallError{Provider: providerName, Status: resp.StatusCode, Message: apiErr.Error.Message}
	}
	return &provider.CallError{Provider: providerName, Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}
