// Package anthropic implements the Anthropic messages wire format: x-api-key
// authentication, system turns hoisted into the top-level system field, and
// text extracted from the first content block.
package anthropic

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
	apiVersion      = "2023-06-01"

	// The messages endpoint requires max_tokens; used when the dispatcher
	// passes no cap.
	fallbackMaxTokens = 1024
)

// Provider issues Anthropic messages calls.
type Provider struct {
	name        string
	apiKey      string
	headers     map[string]string
	client      *http.Client
	messagesURL string
}

// New creates an Anthropic adapter.
func New(name string, cfg config.ProviderConfig, client *http.Client) (*Provider, error) {
	if client == nil {
		return nil, errors.New("http client must not be nil")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("base url must not be empty")
	}

	return &Provider{
		name:        name,
		apiKey:      cfg.APIKey,
		headers:     cfg.Headers,
		client:      client,
		messagesURL: baseURL + "/v1/messages",
	}, nil
}

func (p *Provider) Name() string {
	return p.name
}

// Chat posts the turn sequence as an Anthropic messages request. System turns
// are concatenated into the system field since the messages array only
// accepts user and assistant roles.
func (p *Provider) Chat(ctx context.Context, modelID string, turns []models.ChatTurn, opts provider.CallOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = fallbackMaxTokens
	}

	payload := messagePayload{
		Model:       modelID,
		MaxTokens:   maxTokens,
		Temperature: opts.Temperature,
	}
	var systemParts []string
	for _, turn := range turns {
		if turn.Role == models.RoleSystem {
			if strings.TrimSpace(turn.Content) != "" {
				systemParts = append(systemParts, turn.Content)
			}
			continue
		}
		payload.Messages = append(payload.Messages, wireMessage{
			Role:    turn.Role,
			Content: []contentBlock{{Type: "text", Text: turn.Content}},
		})
	}
	payload.System = strings.Join(systemParts, "\n\n")

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.messagesURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("construct request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)
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

	var resp messageResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", &provider.CallError{Provider: p.name, Status: httpResp.StatusCode, Message: "decode response: " + err.Error()}
	}

	return resp.extractText(p.name), nil
}

type messagePayload struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	System      string        `json:"system,omitempty"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type wireMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

func (r messageResponse) extractText(providerName string) string {
	if len(r.Content) == 0 {
		return provider.Placeholder(providerName)
	}
	text := strings.TrimSpace(r.Content[0].Text)
	if text == "" {
		return provider.Placeholder(providerName)
	}
	return text
}

type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
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
