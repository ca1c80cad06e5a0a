package sentiment

import (
	"context"
	"strings"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/tsawler/prose/v3"
)

const EmotionScorerName = "emotions"

var inflections = []string{"s", "es", "ed", "d", "ing", "ly"}

// LexiconEmotionScorer scores each emotion as its share of the emotion words
// found in the text. Text without emotion words scores zero everywhere.
type LexiconEmotionScorer struct {
	tokenizer prose.Tokenizer
}

func NewLexiconEmotionScorer() *LexiconEmotionScorer {
	return &LexiconEmotionScorer{tokenizer: prose.NewIterTokenizer()}
}

func (s *LexiconEmotionScorer) Name() string { return EmotionScorerName }

func (s *LexiconEmotionScorer) Score(_ context.Context, record models.Record) (models.ScoreResult, error) {
	return s.Analyze(record.String()), nil
}

func (s *LexiconEmotionScorer) Analyze(text string) models.EmotionDistribution {
	dist := models.NewEmotionDistribution()
	plain := strings.ToLower(Normalize(text))
	if plain == "" {
		return dist
	}

	counts := make(map[models.Emotion]int, len(models.Emotions))
	total := 0
	for _, token := range s.tokenizer.Tokenize(plain) {
		for _, emotion := range lookupEmotions(token.Text) {
			counts[emotion]++
			total++
		}
	}
	if total == 0 {
		return dist
	}

	for _, emotion := range models.Emotions {
		dist[emotion] = Round(float64(counts[emotion])/float64(total), 2)
	}
	return dist
}

func lookupEmotions(word string) []models.Emotion {
	if emotions, ok := emotionIndex[word]; ok {
		return emotions
	}
	for _, suffix := range inflections {
		base, found := strings.CutSuffix(word, suffix)
		if !found || len(base) < 3 {
			continue
		}
		if emotions, ok := emotionIndex[base]; ok {
			return emotions
		}
	}
	return nil
}
