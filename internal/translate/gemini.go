package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const translatePrompt = `Translate the following subtitle text from %s to %s.
Return ONLY the translated text, with no quotes, notes, or explanations.
Keep the translation concise enough to read as an on-screen caption.

Text:
%s`

// GeminiTranslator translates caption text through the Gemini API. Multiple
// API keys rotate on quota errors.
type GeminiTranslator struct {
	model   string
	apiKeys []string

	mu         sync.Mutex
	currentKey int
}

// NewGeminiTranslator creates a translator using the given model and keys.
func NewGeminiTranslator(model string, apiKeys []string) (*GeminiTranslator, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini translator needs at least one API key")
	}
	return &GeminiTranslator{model: model, apiKeys: apiKeys}, nil
}

// Translate sends one text fragment to Gemini. Rotates API keys on 429 and
// quota errors; other errors fail immediately.
func (t *GeminiTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	prompt := fmt.Sprintf(translatePrompt, sourceLang, targetLang, text)

	attempts := len(t.apiKeys)
	var lastErr error

	for range attempts {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  t.key(),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			t.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
		if err != nil {
			msg := err.Error()
			if strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
				slog.Warn("gemini key rate limited, rotating", "key_index", t.keyIndex())
				t.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var out string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					out += part.Text
				}
			}
			return strings.TrimSpace(out), nil
		}

		return "", fmt.Errorf("empty response from gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (t *GeminiTranslator) key() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.apiKeys[t.currentKey]
}

func (t *GeminiTranslator) keyIndex() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentKey
}

func (t *GeminiTranslator) rotateKey() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentKey = (t.currentKey + 1) % len(t.apiKeys)
}
