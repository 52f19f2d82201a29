package models

// ProviderID identifies a configured upstream LLM vendor.
type ProviderID string

const (
	ProviderOpenAI     ProviderID = "openai"
	ProviderAnthropic  ProviderID = "anthropic"
	ProviderDeepSeek   ProviderID = "deepseek"
	ProviderPerplexity ProviderID = "perplexity"
	ProviderMicrosoft  ProviderID = "microsoft"
	ProviderAdobe      ProviderID = "adobe"
	ProviderCanva      ProviderID = "canva"
)

// AllProviders lists every provider the platform knows how to dispatch to,
// in the order they are surfaced to clients.
func AllProviders() []ProviderID {
	return []ProviderID{
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderDeepSeek,
		ProviderPerplexity,
		ProviderMicrosoft,
		ProviderAdobe,
		ProviderCanva,
	}
}

// Valid reports whether the identifier names a known provider.
func (p ProviderID) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderDeepSeek, ProviderPerplexity,
		ProviderMicrosoft, ProviderAdobe, ProviderCanva:
		return true
	}
	return false
}

// Conversation roles in the unified schema.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatTurn is a single message in a conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UniformChatRequest is the canonical representation of a chat call.
type UniformChatRequest struct {
	Provider ProviderID
	Model    string
	Message  string
	History  []ChatTurn
}

// UniformTranslateRequest is the canonical representation of a translation call.
// SourceLang may be the sentinel "auto" to let the model infer the source.
type UniformTranslateRequest struct {
	Provider   ProviderID
	Model      string
	Text       string
	SourceLang string
	TargetLang string
}

// UniformResponse is the single response contract every chat call produces.
// Built fresh per call and never mutated afterwards.
type UniformResponse struct {
	Text          string     `json:"text"`
	Provider      ProviderID `json:"provider"`
	Model         string     `json:"model"`
	TokensUsed    int        `json:"tokens_used"`
	CostEstimate  float64    `json:"cost_estimate"`
	ElapsedMillis int64      `json:"elapsed_ms"`
	Timestamp     string     `json:"timestamp"`
	RequestID     string     `json:"request_id"`
}

// TranslationResult is the outward shape of a translation call.
type TranslationResult struct {
	TranslatedText string     `json:"translated_text"`
	SourceLang     string     `json:"source_lang"`
	TargetLang     string     `json:"target_lang"`
	Provider       ProviderID `json:"provider"`
	Model          string     `json:"model"`
	TokensUsed     int        `json:"tokens_used"`
	CostEstimate   float64    `json:"cost_estimate"`
	ElapsedMillis  int64      `json:"elapsed_ms"`
	Timestamp      string     `json:"timestamp"`
	RequestID      string     `json:"request_id"`
}

// DetectionResult is the outward shape of a language-detection call.
// LanguageCode is "unknown" when the model's answer matches no directory entry.
type DetectionResult struct {
	LanguageName string     `json:"language_name"`
	LanguageCode string     `json:"language_code"`
	Provider     ProviderID `json:"provider"`
	Model        string     `json:"model"`
	Timestamp    string     `json:"timestamp"`
	RequestID    string     `json:"request_id"`
}

// CatalogEntry describes one model a provider exposes.
type CatalogEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
