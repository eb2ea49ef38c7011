package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmotionScores_NestedShape(t *testing.T) {
	raw := []byte(`[[{"label":"sadness","score":0.1},{"label":"joy","score":0.8},{"label":"anger","score":0.1}]]`)

	scores, err := parseEmotionScores(raw)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "joy", scores[0].Label)
	assert.InDelta(t, 0.8, scores[0].Score, 1e-9)
}

func TestParseEmotionScores_FlatShape(t *testing.T) {
	raw := []byte(`[{"label":"fear","score":0.3},{"label":"joy","score":0.7}]`)

	scores, err := parseEmotionScores(raw)
	require.NoError(t, err)
	assert.Equal(t, "joy", scores[0].Label)
	assert.Equal(t, "fear", scores[1].Label)
}

func TestParseEmotionScores_Unrecognized(t *testing.T) {
	_, err := parseEmotionScores([]byte(`{"error":"model loading"}`))
	assert.Error(t, err)
}

func TestParseGeneratedText(t *testing.T) {
	text, err := parseGeneratedText([]byte(`[{"generated_text":"Be kind to yourself today."}]`))
	require.NoError(t, err)
	assert.Equal(t, "Be kind to yourself today.", text)
}

func TestParseGeneratedText_Empty(t *testing.T) {
	_, err := parseGeneratedText([]byte(`[]`))
	assert.Error(t, err)
}
