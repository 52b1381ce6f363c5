package persona

import (
	"sort"
	"strings"

	"github.com/buddybot/buddyvoice/internal/voice/catalog"
	"github.com/buddybot/buddyvoice/internal/voice/vendors"
)

// SentinelVendorID marks the synthetic voice used when the vendor is
// unreachable. Synthesis callers must check for it before trusting a
// resolved voice.
const SentinelVendorID = 99999

// SentinelVoice returns the hardcoded record substituted when no real
// voice is available.
func SentinelVoice() catalog.VoiceRecord {
	return catalog.VoiceRecord{
		VendorID:    SentinelVendorID,
		Name:        "Error Fallback",
		Gender:      vendors.GenderFemale,
		Age:         25,
		Language:    vendors.LanguageEnglish,
		Description: "fallback voice used when the vendor is unavailable",
	}
}

type selectionKey struct {
	personality Personality
	language    Language
}

// Snapshot is an immutable personality-to-voice mapping derived from one
// read of the voice cache. Build a new one after each cache refresh; in
// between, resolutions on the same snapshot are stable.
type Snapshot struct {
	selections map[selectionKey]catalog.VoiceRecord
	fallbacks  map[Language]catalog.VoiceRecord
}

// Build derives a snapshot from the given cache records. Pools are ranked
// by suitability; a personality takes the first pool voice matching any of
// its trait keywords, or the pool's top voice when nothing matches. An
// empty Hindi pool is substituted by the English pool. An empty catalog
// yields the fallback snapshot.
func Build(records []catalog.VoiceRecord) *Snapshot {
	if len(records) == 0 {
		return Fallback()
	}

	sorted := make([]catalog.VoiceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SuitabilityScore > sorted[j].SuitabilityScore
	})

	var english, hindi []catalog.VoiceRecord
	for _, r := range sorted {
		switch r.Language {
		case vendors.LanguageEnglish:
			english = append(english, r)
		case vendors.LanguageHindi:
			hindi = append(hindi, r)
		}
	}
	if len(hindi) == 0 {
		hindi = english
	}
	if len(english) == 0 && len(hindi) == 0 {
		return Fallback()
	}

	pools := map[Language][]catalog.VoiceRecord{
		LanguageEnglish: english,
		LanguageHindi:   hindi,
	}

	s := &Snapshot{
		selections: make(map[selectionKey]catalog.VoiceRecord),
		fallbacks:  make(map[Language]catalog.VoiceRecord),
	}
	for lang, pool := range pools {
		if len(pool) == 0 {
			continue
		}
		s.fallbacks[lang] = pool[0]
		for _, p := range All {
			s.selections[selectionKey{p, lang}] = pickByTraits(pool, traits[p])
		}
	}
	return s
}

// Fallback builds the bootstrap snapshot: the sentinel voice assigned to
// every personality and both language fallbacks. It keeps the pipeline
// usable with zero vendor connectivity.
func Fallback() *Snapshot {
	s := &Snapshot{
		selections: make(map[selectionKey]catalog.VoiceRecord),
		fallbacks:  make(map[Language]catalog.VoiceRecord),
	}
	sentinel := SentinelVoice()
	for _, lang := range Languages {
		s.fallbacks[lang] = sentinel
		for _, p := range All {
			s.selections[selectionKey{p, lang}] = sentinel
		}
	}
	return s
}

// pickByTraits returns the first pool voice whose description contains any
// trait keyword, or the top-ranked voice when none match.
func pickByTraits(pool []catalog.VoiceRecord, keywords []string) catalog.VoiceRecord {
	for _, v := range pool {
		desc := strings.ToLower(v.Description)
		for _, kw := range keywords {
			if strings.Contains(desc, kw) {
				return v
			}
		}
	}
	return pool[0]
}

// Resolve returns the voice for a personality and language. It is total:
// unrecognized inputs fall back to defaults, a missing mapping falls back
// to the language fallback, and a missing fallback yields the sentinel.
func (s *Snapshot) Resolve(personality, language string) catalog.VoiceRecord {
	if s == nil {
		return SentinelVoice()
	}
	p := Normalize(personality)
	l := NormalizeLanguage(language)

	if v, ok := s.selections[selectionKey{p, l}]; ok {
		return v
	}
	if v, ok := s.fallbacks[l]; ok {
		return v
	}
	return SentinelVoice()
}

// Degraded reports whether the snapshot is running on the sentinel voice.
func (s *Snapshot) Degraded() bool {
	return s.Resolve(string(FriendlyCompanion), string(LanguageEnglish)).VendorID == SentinelVendorID
}
