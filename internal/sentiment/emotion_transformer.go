package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/sentilens/internal/models"
)

// transformerLabels maps the labels emitted by common emotion classification
// models onto the fixed emotion set. Unlisted labels such as "neutral" are
// dropped before renormalizing.
var transformerLabels = map[string]models.Emotion{
	"joy":       models.Happy,
	"happy":     models.Happy,
	"happiness": models.Happy,
	"love":      models.Happy,
	"anger":     models.Angry,
	"angry":     models.Angry,
	"disgust":   models.Angry,
	"surprise":  models.Surprise,
	"sadness":   models.Sad,
	"sad":       models.Sad,
	"fear":      models.Fear,
}

// TransformerEmotionScorer runs a local text-classification model and folds
// its per-label scores into an EmotionDistribution.
type TransformerEmotionScorer struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewTransformerEmotionScorer loads the model at modelPath into an ONNX
// runtime session. The runtime library must be installed on the host.
func NewTransformerEmotionScorer(modelPath string) (*TransformerEmotionScorer, error) {
	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "emotionPipeline",
		Options: []hugot.TextClassificationOption{
			pipelines.WithMultiLabel(),
		},
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("failed to initialize emotion pipeline: %w", err)
	}

	slog.Info("[EmotionScorer] Transformer pipeline ready",
		slog.String("model_path", modelPath))

	return &TransformerEmotionScorer{session: session, pipeline: pipeline}, nil
}

func (s *TransformerEmotionScorer) Name() string { return EmotionScorerName }

func (s *TransformerEmotionScorer) Score(_ context.Context, record models.Record) (models.ScoreResult, error) {
	plain := Normalize(record.String())
	if plain == "" {
		return models.NewEmotionDistribution(), nil
	}

	output, err := s.pipeline.RunPipeline([]string{plain})
	if err != nil {
		return nil, fmt.Errorf("emotion pipeline failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return models.NewEmotionDistribution(), nil
	}

	raw := make(map[string]float64, len(output.ClassificationOutputs[0]))
	for _, c := range output.ClassificationOutputs[0] {
		raw[c.Label] = float64(c.Score)
	}
	return foldEmotionLabels(raw), nil
}

func (s *TransformerEmotionScorer) Close() error {
	return s.session.Destroy()
}

func foldEmotionLabels(raw map[string]float64) models.EmotionDistribution {
	dist := models.NewEmotionDistribution()
	total := 0.0
	for label, score := range raw {
		emotion, ok := transformerLabels[strings.ToLower(label)]
		if !ok {
			continue
		}
		dist[emotion] += score
		total += score
	}
	if total == 0 {
		return dist
	}
	for emotion, score := range dist {
		dist[emotion] = Round(score/total, 2)
	}
	return dist
}
