package sentiment

import (
	"context"
	"log/slog"
	"strings"
)

const correctionPrompt = `Correct the spelling mistakes in the user's text.
Return only the corrected text. Keep wording, punctuation and casing unchanged
wherever the original spelling is already correct.`

// Completer sends one system+user prompt to a language model.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// LLMCorrector asks a language model for the correction and falls back to the
// local corrector when the model is unavailable or answers with nothing.
type LLMCorrector struct {
	client   Completer
	fallback Corrector
}

func NewLLMCorrector(client Completer, fallback Corrector) *LLMCorrector {
	return &LLMCorrector{client: client, fallback: fallback}
}

func (c *LLMCorrector) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	corrected, err := c.client.Complete(ctx, correctionPrompt, text)
	if err == nil && strings.TrimSpace(corrected) != "" {
		return strings.TrimSpace(corrected), nil
	}

	if err != nil {
		slog.Warn("[LLMCorrector] Model correction failed, using local dictionary",
			slog.String("error", err.Error()))
	} else {
		slog.Warn("[LLMCorrector] Model returned empty correction, using local dictionary")
	}
	return c.fallback.Correct(ctx, text)
}
