package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractThemes_MatchesKeywords(t *testing.T) {
	themes := ExtractThemes("Long day at work, then hit the gym with a friend.")

	assert.Equal(t, []string{"work", "relationships", "health"}, themes)
}

func TestExtractThemes_CaseInsensitiveAndSubstring(t *testing.T) {
	themes := ExtractThemes("WORKING on my Writing habits")

	assert.Equal(t, []string{"work", "creativity", "growth"}, themes)
}

func TestExtractThemes_NoMatches(t *testing.T) {
	themes := ExtractThemes("just an ordinary afternoon")

	assert.Empty(t, themes)
}

func TestExtractThemes_ThemeCountedOnce(t *testing.T) {
	themes := ExtractThemes("meeting after meeting with the boss at the office")

	assert.Equal(t, []string{"work"}, themes)
}
