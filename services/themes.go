package services

import "strings"

// themeKeywords maps life themes onto the keywords that signal them in an
// entry. Matching is a case-insensitive substring scan, so "working" counts
// towards work.
var themeKeywords = map[string][]string{
	"work":          {"work", "job", "career", "office", "meeting", "boss", "colleague", "deadline"},
	"relationships": {"friend", "family", "partner", "relationship", "love", "mother", "father", "girlfriend", "boyfriend"},
	"health":        {"health", "sleep", "exercise", "tired", "energy", "sick", "doctor", "gym"},
	"stress":        {"stress", "anxious", "anxiety", "overwhelm", "pressure", "worried", "panic"},
	"achievement":   {"achieve", "accomplish", "finish", "complete", "goal", "success", "proud", "progress"},
	"creativity":    {"create", "art", "music", "write", "writing", "paint", "design", "idea"},
	"finance":       {"money", "budget", "bill", "debt", "saving", "salary", "rent"},
	"growth":        {"learn", "grow", "improve", "change", "habit", "practice", "reflect"},
	"gratitude":     {"grateful", "thankful", "appreciate", "blessed", "gratitude"},
}

// themeOrder keeps theme output deterministic across map iteration.
var themeOrder = []string{
	"work", "relationships", "health", "stress", "achievement",
	"creativity", "finance", "growth", "gratitude",
}

// ExtractThemes scans entry content for recurring life themes.
func ExtractThemes(content string) []string {
	lowered := strings.ToLower(content)

	themes := []string{}
	for _, theme := range themeOrder {
		for _, keyword := range themeKeywords[theme] {
			if strings.Contains(lowered, keyword) {
				themes = append(themes, theme)
				break
			}
		}
	}
	return themes
}
