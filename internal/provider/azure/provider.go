// Package azure implements the Azure OpenAI wire format: a per-account
// endpoint and deployment name resolved into the request URL, and an api-key
// header instead of bearer authentication. The body and response envelope
// follow the OpenAI chat-completions shape.
package azure

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

// Provider issues chat-completions calls against an Azure OpenAI deployment.
type Provider struct {
	name    string
	apiKey  string
	client  *http.Client
	chatURL string
}

// New creates an Azure OpenAI adapter. The deployment, not the model id,
// selects the checkpoint on Azure's side.
func New(name string, cfg config.AzureConfig, client *http.Client) (*Provider, error) {
	if client == nil {
		return nil, errors.New("http client must not be nil")
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		// Unconfigured deployments are still constructed; availability
		// gating keeps them from ever being called.
		endpoint = "https://unconfigured.openai.azure.com"
	}
	deployment := cfg.Deployment
	if deployment == "" {
		deployment = "unconfigured"
	}

	chatURL := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		endpoint, deployment, cfg.APIVersion)

	return &Provider{
		name:    name,
		apiKey:  cfg.APIKey,
		client:  client,
		chatURL: chatURL,
	}, nil
}

func (p *Provider) Name() string {
	return p.name
}

// Chat posts the turn sequence to the deployment URL and extracts the first
// choice's message content.
func (p *Provider) Chat(ctx context.Context, modelID string, turns []models.ChatTurn, opts provider.CallOptions) (string, error) {
	payload := chatPayload{
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
	httpReq.Header.Set("api-key", p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &provider.CallError{Provider: p.name, Message: err.Error()}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		body, readErr := io.ReadAll(io.LimitReader(httpResp.Body, 64*1024))
		if readErr != nil {
			return "", &provider.CallError{Provider: p.name, Status: httpResp.StatusCode, Message: "failed to read error body"}
		}
		return "", &provider.CallError{Provider: p.name, Status: httpResp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var resp chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", &provider.CallError{Provider: p.name, Status: httpResp.StatusCode, Message: "decode response: " + err.Error()}
	}

	return resp.extractText(p.name), nil
}

type chatPayload struct {
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
