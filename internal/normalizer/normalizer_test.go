package normalizer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhamawchare/Multi-LLM-Chat-Translation-Platform/internal/models"
)

func makeHistory(n int) []models.ChatTurn {
	history := make([]models.ChatTurn, 0, n)
	for i := 0; i < n; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		history = append(history, models.ChatTurn{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}
	return history
}

func TestChatTurnsTruncatesHistory(t *testing.T) {
	history := makeHistory(15)

	turns, err := ChatTurns(models.ProviderOpenAI, history, "hello")
	require.NoError(t, err)

	// Last 10 history entries plus the new user turn.
	require.Len(t, turns, 11)
	assert.Equal(t, "turn 5", turns[0].Content)
	assert.Equal(t, "turn 14", turns[9].Content)
	assert.Equal(t, models.ChatTurn{Role: models.RoleUser, Content: "hello"}, turns[10])
}

func TestChatTurnsShortHistoryKept(t *testing.T) {
	history := makeHistory(3)

	turns, err := ChatTurns(models.ProviderAnthropic, history, "hi")
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, "turn 0", turns[0].Content)
}

func TestChatTurnsPerplexityDropsSystemTurns(t *testing.T) {
	history := []models.ChatTurn{
		{Role: models.RoleSystem, Content: "you are helpful"},
		{Role: models.RoleUser, Content: "question"},
		{Role: models.RoleAssistant, Content: "answer"},
	}

	turns, err := ChatTurns(models.ProviderPerplexity, history, "follow-up")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	for _, turn := range turns {
		assert.NotEqual(t, models.RoleSystem, turn.Role)
	}

	// Other providers keep system turns untouched.
	turns, err = ChatTurns(models.ProviderOpenAI, history, "follow-up")
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, models.RoleSystem, turns[0].Role)
}

func TestChatTurnsRejectsEmptyMessage(t *testing.T) {
	_, err := ChatTurns(models.ProviderOpenAI, nil, "   \n\t")
	require.ErrorIs(t, err, ErrValidation)
}

func TestTranslationPromptAutoSource(t *testing.T) {
	prompt, err := TranslationPrompt("bonjour le monde", AutoSource, "en")
	require.NoError(t, err)

	assert.Contains(t, prompt, "English")
	assert.Contains(t, prompt, `"bonjour le monde"`)
	// With an auto source, no source language is ever named.
	assert.NotContains(t, prompt, "from")
}

func TestTranslationPromptExplicitSource(t *testing.T) {
	prompt, err := TranslationPrompt("hola", "es", "fr")
	require.NoError(t, err)

	assert.Contains(t, prompt, "from Spanish to French")
	assert.Contains(t, prompt, `"hola"`)
}

func TestTranslationPromptValidation(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		source string
		target string
	}{
		{name: "empty text", text: "  ", source: "auto", target: "en"},
		{name: "missing target", text: "hola", source: "auto", target: ""},
		{name: "unknown target", text: "hola", source: "auto", target: "xx"},
		{name: "unknown source", text: "hola", source: "xx", target: "en"},
		{name: "source equals target", text: "hola", source: "es", target: "es"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TranslationPrompt(tt.text, tt.source, tt.target)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTranslationPromptEmptySourceTreatedAsAuto(t *testing.T) {
	prompt, err := TranslationPrompt("hallo", "", "en")
	require.NoError(t, err)
	assert.False(t, strings.Contains(prompt, "from"))
}

func TestDetectionPrompt(t *testing.T) {
	prompt, err := DetectionPrompt("ciao")
	require.NoError(t, err)
	assert.Contains(t, prompt, "English name")
	assert.Contains(t, prompt, `"ciao"`)

	_, err = DetectionPrompt(" ")
	require.ErrorIs(t, err, ErrValidation)
}
