package catalog

import "strings"

// Keyword vocabularies for the suitability heuristic. These are deliberately
// distinct from the persona trait tables; do not merge them.
var (
	kidFriendlyKeywords = []string{
		"warm", "friendly", "cheerful", "gentle", "soft", "pleasant",
		"engaging", "enthusiastic", "lively", "vibrant", "clear",
		"expressive", "dynamic", "captivating",
	}

	negativeKeywords = []string{
		"serious", "monotone", "deep", "grave", "stern", "harsh",
		"rough", "intimidating", "authoritative", "formal",
	}
)

// SuitabilityScore rates how kid-friendly a voice sounds. Younger voices and
// friendly descriptions score higher; the result never goes below zero.
func SuitabilityScore(age int, description string) float64 {
	score := 0.0

	switch {
	case age <= 30:
		score += 3.0
	case age <= 40:
		score += 2.0
	case age <= 50:
		score += 1.0
	}

	desc := strings.ToLower(description)
	for _, kw := range kidFriendlyKeywords {
		if strings.Contains(desc, kw) {
			score += 1.0
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(desc, kw) {
			score -= 1.0
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}
