package sentiment

import "github.com/spacesedan/sentilens/internal/models"

const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Classify maps a compound score to a label. Both thresholds are inclusive.
func Classify(compound float64) models.Label {
	switch {
	case compound >= PositiveThreshold:
		return models.Positive
	case compound <= NegativeThreshold:
		return models.Negative
	default:
		return models.Neutral
	}
}

var glyphs = map[models.Label]string{
	models.Positive: "😊",
	models.Neutral:  "😐",
	models.Negative: "😢",
}

// Glyph returns the display symbol for a label, or an empty string for an
// unknown label.
func Glyph(label models.Label) string {
	return glyphs[label]
}
