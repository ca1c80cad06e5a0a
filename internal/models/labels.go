package models

import "strings"

// Label is the discrete sentiment category derived from a compound score.
type Label string

const (
	Positive Label = "Positive"
	Neutral  Label = "Neutral"
	Negative Label = "Negative"
)

var Labels = []Label{Positive, Neutral, Negative}

// ParseLabel matches name against the labels case-insensitively.
func ParseLabel(name string) (Label, bool) {
	for _, l := range Labels {
		if strings.EqualFold(string(l), name) {
			return l, true
		}
	}
	return "", false
}

type Emotion string

const (
	Happy    Emotion = "Happy"
	Angry    Emotion = "Angry"
	Surprise Emotion = "Surprise"
	Sad      Emotion = "Sad"
	Fear     Emotion = "Fear"
)

// Emotions is the fixed label set of an EmotionDistribution, in display order.
var Emotions = []Emotion{Happy, Angry, Surprise, Sad, Fear}

// NewEmotionDistribution returns a distribution with every label set to zero.
func NewEmotionDistribution() EmotionDistribution {
	d := make(EmotionDistribution, len(Emotions))
	for _, e := range Emotions {
		d[e] = 0
	}
	return d
}
