package sentiment

import (
	"errors"
	"fmt"
	"log/slog"
)

// BatchPrecision is the rounding applied to polarity and subjectivity in the
// batch table.
const BatchPrecision = 2

type Options struct {
	// EmotionModelPath selects the transformer emotion scorer when set.
	EmotionModelPath string
	// Completer enables model-backed spelling correction when set.
	Completer Completer
	// DictionaryWords extends the local spelling dictionary.
	DictionaryWords []string
}

// Analyzers owns every scoring model of the process. Build it once at startup
// and share it; all members are safe for concurrent use.
type Analyzers struct {
	Polarity  *PolarityScorer
	Compound  *CompoundScorer
	Emotion   Scorer
	Corrector Corrector

	closers []func() error
}

func NewAnalyzers(opts Options) (*Analyzers, error) {
	a := &Analyzers{
		Polarity: NewPolarityScorer(),
		Compound: NewCompoundScorer(),
	}

	if opts.EmotionModelPath != "" {
		emotion, err := NewTransformerEmotionScorer(opts.EmotionModelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load emotion model: %w", err)
		}
		a.Emotion = emotion
		a.closers = append(a.closers, emotion.Close)
	} else {
		a.Emotion = NewLexiconEmotionScorer()
	}

	var corrector Corrector = NewFuzzyCorrector(opts.DictionaryWords...)
	if opts.Completer != nil {
		corrector = NewLLMCorrector(opts.Completer, corrector)
	}
	a.Corrector = corrector

	slog.Info("[Analyzers] Scoring models initialized",
		slog.String("emotion_scorer", fmt.Sprintf("%T", a.Emotion)),
		slog.String("corrector", fmt.Sprintf("%T", a.Corrector)))

	return a, nil
}

// BatchScorers returns the scorers applied to every row of an uploaded table,
// in column order.
func (a *Analyzers) BatchScorers() []Scorer {
	return []Scorer{
		a.Polarity.WithPrecision(BatchPrecision),
		a.Compound,
	}
}

func (a *Analyzers) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
