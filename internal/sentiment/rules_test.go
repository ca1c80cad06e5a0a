package sentiment

import (
	"testing"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		compound float64
		want     models.Label
	}{
		{0.05, models.Positive},
		{-0.05, models.Negative},
		{0.0, models.Neutral},
		{0.049, models.Neutral},
		{-0.0499, models.Neutral},
		{1, models.Positive},
		{-1, models.Negative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.compound), "compound %v", tt.compound)
	}
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "😊", Glyph(models.Positive))
	assert.Equal(t, "😐", Glyph(models.Neutral))
	assert.Equal(t, "😢", Glyph(models.Negative))
	assert.Empty(t, Glyph(models.Label("Mixed")))
}
