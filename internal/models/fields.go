package models

import (
	"errors"
	"fmt"
)

var ErrFieldMismatch = errors.New("cell does not hold the projected result type")

// Field projects one value out of a structured cell. It reports false when the
// cell holds a different variant.
type Field struct {
	Name    string
	Project func(Value) (Value, bool)
}

func numberField[T ScoreResult](name string, get func(T) float64) Field {
	return Field{
		Name: name,
		Project: func(v Value) (Value, bool) {
			r, ok := v.(T)
			if !ok {
				return nil, false
			}
			return Number(get(r)), true
		},
	}
}

var (
	PolarityField     = numberField("polarity", func(r PolaritySubjectivity) float64 { return r.Polarity })
	SubjectivityField = numberField("subjectivity", func(r PolaritySubjectivity) float64 { return r.Subjectivity })
	NegField          = numberField("neg", func(r CompoundSentiment) float64 { return r.Neg })
	NeuField          = numberField("neu", func(r CompoundSentiment) float64 { return r.Neu })
	PosField          = numberField("pos", func(r CompoundSentiment) float64 { return r.Pos })
	CompoundField     = numberField("compound", func(r CompoundSentiment) float64 { return r.Compound })
)

var CorrectedTextField = Field{
	Name: "text",
	Project: func(v Value) (Value, bool) {
		r, ok := v.(CorrectedText)
		if !ok {
			return nil, false
		}
		return Text(r.Text), true
	},
}

func EmotionField(label Emotion) Field {
	return numberField(string(label), func(r EmotionDistribution) float64 { return r[label] })
}

// Extract applies the field to one cell. Null cells yield def.
func (f Field) Extract(v Value, def Value) (Value, error) {
	if v == nil {
		return def, nil
	}
	out, ok := f.Project(v)
	if !ok {
		return nil, fmt.Errorf("field %q on %T: %w", f.Name, v, ErrFieldMismatch)
	}
	return out, nil
}
