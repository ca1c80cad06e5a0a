package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/sentiment"
)

var ErrEmptyText = errors.New("text is empty")

// TextReport is the full analysis of one piece of free text.
type TextReport struct {
	Text         string                     `json:"text"`
	Polarity     float64                    `json:"polarity"`
	Subjectivity float64                    `json:"subjectivity"`
	Compound     float64                    `json:"compound"`
	Label        models.Label               `json:"label"`
	Glyph        string                     `json:"glyph"`
	Emotions     models.EmotionDistribution `json:"emotions"`
	Corrected    string                     `json:"corrected_text"`
}

// AnalyzeText scores a single text with every analyzer.
func AnalyzeText(ctx context.Context, analyzers *sentiment.Analyzers, text string) (*TextReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	polarity, err := analyzers.Polarity.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("polarity: %w", err)
	}

	compound := analyzers.Compound.Analyze(text)
	label := sentiment.Classify(compound.Compound)

	emotionResult, err := analyzers.Emotion.Score(ctx, models.NewRecord(text))
	if err != nil {
		return nil, fmt.Errorf("emotions: %w", err)
	}
	emotions, ok := emotionResult.(models.EmotionDistribution)
	if !ok {
		return nil, fmt.Errorf("emotions: unexpected result %T", emotionResult)
	}

	correction, err := sentiment.CorrectionScorer{Corrector: analyzers.Corrector}.Score(ctx, models.NewRecord(text))
	if err != nil {
		return nil, fmt.Errorf("spelling: %w", err)
	}
	corrected, err := models.CorrectedTextField.Extract(correction, models.Text(text))
	if err != nil {
		return nil, fmt.Errorf("spelling: %w", err)
	}

	return &TextReport{
		Text:         text,
		Polarity:     polarity.Polarity,
		Subjectivity: polarity.Subjectivity,
		Compound:     compound.Compound,
		Label:        label,
		Glyph:        sentiment.Glyph(label),
		Emotions:     emotions,
		Corrected:    corrected.Format(),
	}, nil
}

// Lines renders the report for display, scores with two decimals.
func (r *TextReport) Lines() []string {
	lines := []string{
		fmt.Sprintf("Polarity: %.2f", r.Polarity),
		fmt.Sprintf("Subjectivity: %.2f", r.Subjectivity),
		fmt.Sprintf("Sentiment: %s %s", r.Label, r.Glyph),
		"Emotions:",
	}
	for _, emotion := range models.Emotions {
		lines = append(lines, fmt.Sprintf("  %s: %.2f", emotion, r.Emotions[emotion]))
	}
	return append(lines, "Corrected text: "+r.Corrected)
}

// AnalyzeText runs the single-text analysis with the session's analyzers.
func (s *Session) AnalyzeText(ctx context.Context, text string) (*TextReport, error) {
	s.touch()
	return AnalyzeText(ctx, s.deps.Analyzers, text)
}
