package persona

import "github.com/buddybot/buddyvoice/internal/voice/vendors"

// Personality selects the speaking character of the companion.
type Personality string

const (
	FriendlyCompanion Personality = "friendly_companion"
	StoryNarrator     Personality = "story_narrator"
	LearningBuddy     Personality = "learning_buddy"
)

// All lists every supported personality.
var All = []Personality{FriendlyCompanion, StoryNarrator, LearningBuddy}

// Trait keywords matched against voice descriptions when picking a voice
// for a personality. This vocabulary intentionally differs from the
// suitability scoring keywords (e.g. "energetic" here vs "enthusiastic"
// there); keep them separate.
var traits = map[Personality][]string{
	FriendlyCompanion: {"warm", "friendly", "cheerful"},
	StoryNarrator:     {"gentle", "soft", "captivating"},
	LearningBuddy:     {"energetic", "lively", "clear"},
}

// Known reports whether the string names a supported personality exactly.
func Known(p string) bool {
	switch Personality(p) {
	case FriendlyCompanion, StoryNarrator, LearningBuddy:
		return true
	}
	return false
}

// Normalize maps any string onto a supported personality, defaulting to
// the friendly companion.
func Normalize(p string) Personality {
	if Known(p) {
		return Personality(p)
	}
	return FriendlyCompanion
}

// Language is the caller-facing language tag.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// Languages lists every supported language.
var Languages = []Language{LanguageEnglish, LanguageHindi}

// NormalizeLanguage maps any string onto a supported language, defaulting
// to English.
func NormalizeLanguage(l string) Language {
	switch Language(l) {
	case LanguageEnglish, LanguageHindi:
		return Language(l)
	}
	return LanguageEnglish
}

// VendorCode returns the numeric language code the TTS wire protocol uses.
func (l Language) VendorCode() int {
	if l == LanguageHindi {
		return vendors.LanguageHindi
	}
	return vendors.LanguageEnglish
}
