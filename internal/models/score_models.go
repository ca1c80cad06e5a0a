package models

import (
	"encoding/json"
	"strconv"
)

// Value is a single table cell. A nil Value is a null cell.
type Value interface {
	Format() string
}

// ScoreResult is the output of one scorer for one record.
type ScoreResult interface {
	Value
	scoreResult()
}

type Text string

func (t Text) Format() string { return string(t) }

type Number float64

func (n Number) Format() string { return formatFloat(float64(n)) }

type PolaritySubjectivity struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

type CompoundSentiment struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// EmotionDistribution maps every label in Emotions to an intensity.
type EmotionDistribution map[Emotion]float64

type CorrectedText struct {
	Text string `json:"text"`
}

func (PolaritySubjectivity) scoreResult() {}
func (CompoundSentiment) scoreResult()    {}
func (EmotionDistribution) scoreResult()  {}
func (CorrectedText) scoreResult()        {}

func (p PolaritySubjectivity) Format() string { return formatJSON(p) }
func (c CompoundSentiment) Format() string    { return formatJSON(c) }
func (c CorrectedText) Format() string        { return c.Text }

// Format writes the labels in the fixed Emotions order so exports are stable.
func (e EmotionDistribution) Format() string {
	buf := []byte{'{'}
	for i, label := range Emotions {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendQuote(buf, string(label))
		buf = append(buf, ':')
		buf = append(buf, formatFloat(e[label])...)
	}
	return string(append(buf, '}'))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// json.Marshal keeps struct field order, which keeps the output deterministic.
func formatJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
