package sentiment

import (
	"bufio"
	"context"
	_ "embed"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/sajari/fuzzy"
	"github.com/spacesedan/sentilens/internal/models"
)

const CorrectionScorerName = "corrected_text"

//go:embed data/words.txt
var dictionary string

var wordPattern = regexp.MustCompile(`[A-Za-z]+`)

// Corrector rewrites text with spelling mistakes fixed.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// FuzzyCorrector corrects each word independently against a trained
// dictionary. Words with no candidate are left untouched.
type FuzzyCorrector struct {
	model *fuzzy.Model
	known map[string]struct{}
}

// minCorrectableLength keeps short words such as "I" or "ok" away from
// single-edit suggestions.
const minCorrectableLength = 3

func NewFuzzyCorrector(extraWords ...string) *FuzzyCorrector {
	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(1)
	model.SetUseAutocomplete(false)

	words := dictionaryWords()
	for _, list := range emotionLexicon {
		words = append(words, list...)
	}
	words = append(words, extraWords...)
	model.Train(words)

	known := make(map[string]struct{}, len(words))
	for _, w := range words {
		known[strings.ToLower(w)] = struct{}{}
	}

	slog.Debug("[FuzzyCorrector] Dictionary trained", slog.Int("words", len(words)))

	return &FuzzyCorrector{model: model, known: known}
}

func (c *FuzzyCorrector) Correct(_ context.Context, text string) (string, error) {
	return c.CorrectText(text), nil
}

func (c *FuzzyCorrector) CorrectText(text string) string {
	return wordPattern.ReplaceAllStringFunc(text, c.correctWord)
}

func (c *FuzzyCorrector) correctWord(word string) string {
	lower := strings.ToLower(word)
	if len(lower) < minCorrectableLength {
		return word
	}
	if _, ok := c.known[lower]; ok {
		return word
	}
	suggestion := c.model.SpellCheck(lower)
	if suggestion == "" || suggestion == lower {
		return word
	}
	return matchCase(word, suggestion)
}

func matchCase(original, suggestion string) string {
	runes := []rune(original)
	switch {
	case len(runes) > 1 && strings.ToUpper(original) == original:
		return strings.ToUpper(suggestion)
	case unicode.IsUpper(runes[0]):
		s := []rune(suggestion)
		s[0] = unicode.ToUpper(s[0])
		return string(s)
	default:
		return suggestion
	}
}

func dictionaryWords() []string {
	var words []string
	scanner := bufio.NewScanner(strings.NewReader(dictionary))
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	return words
}

// CorrectionScorer exposes a Corrector through the Scorer contract.
type CorrectionScorer struct {
	Corrector Corrector
}

func (s CorrectionScorer) Name() string { return CorrectionScorerName }

func (s CorrectionScorer) Score(ctx context.Context, record models.Record) (models.ScoreResult, error) {
	corrected, err := s.Corrector.Correct(ctx, record.String())
	if err != nil {
		return nil, err
	}
	return models.CorrectedText{Text: corrected}, nil
}
