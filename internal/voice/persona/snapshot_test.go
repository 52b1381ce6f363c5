package persona

import (
	"testing"

	"github.com/buddybot/buddyvoice/internal/voice/catalog"
	"github.com/buddybot/buddyvoice/internal/voice/vendors"
)

func voice(id int, lang int, score float64, desc string) catalog.VoiceRecord {
	return catalog.VoiceRecord{
		VendorID:         id,
		Gender:           vendors.GenderFemale,
		Age:              25,
		Language:         lang,
		Description:      desc,
		SuitabilityScore: score,
	}
}

func TestBuildSingleVoiceServesAllPersonalities(t *testing.T) {
	snap := Build([]catalog.VoiceRecord{
		voice(7, vendors.LanguageEnglish, 8.0, "warm friendly cheerful"),
	})

	for _, p := range All {
		got := snap.Resolve(string(p), "en")
		if got.VendorID != 7 {
			t.Errorf("Resolve(%s, en) = voice %d, want 7", p, got.VendorID)
		}
	}
}

func TestBuildTraitMatchBeatsRank(t *testing.T) {
	snap := Build([]catalog.VoiceRecord{
		voice(1, vendors.LanguageEnglish, 9.0, "warm friendly cheerful"),
		voice(2, vendors.LanguageEnglish, 5.0, "a gentle soft storyteller"),
		voice(3, vendors.LanguageEnglish, 4.0, "energetic and clear"),
	})

	tests := []struct {
		personality Personality
		wantID      int
	}{
		{FriendlyCompanion, 1},
		{StoryNarrator, 2},
		{LearningBuddy, 3},
	}
	for _, tt := range tests {
		got := snap.Resolve(string(tt.personality), "en")
		if got.VendorID != tt.wantID {
			t.Errorf("Resolve(%s, en) = voice %d, want %d",
				tt.personality, got.VendorID, tt.wantID)
		}
	}
}

func TestBuildNoTraitMatchFallsBackToTopRanked(t *testing.T) {
	snap := Build([]catalog.VoiceRecord{
		voice(10, vendors.LanguageEnglish, 3.0, "plain narration"),
		voice(11, vendors.LanguageEnglish, 6.0, "nondescript"),
	})

	got := snap.Resolve(string(StoryNarrator), "en")
	if got.VendorID != 11 {
		t.Errorf("expected top-ranked voice 11, got %d", got.VendorID)
	}
}

func TestBuildHindiSubstitution(t *testing.T) {
	snap := Build([]catalog.VoiceRecord{
		voice(7, vendors.LanguageEnglish, 8.0, "warm friendly cheerful"),
	})

	for _, p := range All {
		en := snap.Resolve(string(p), "en")
		hi := snap.Resolve(string(p), "hi")
		if en.VendorID != hi.VendorID {
			t.Errorf("%s: hindi resolution %d differs from english %d",
				p, hi.VendorID, en.VendorID)
		}
	}
}

func TestResolveTotality(t *testing.T) {
	snaps := map[string]*Snapshot{
		"built":    Build([]catalog.VoiceRecord{voice(1, vendors.LanguageEnglish, 1.0, "warm")}),
		"fallback": Fallback(),
		"nil":      nil,
	}
	inputs := []struct{ personality, language string }{
		{"friendly_companion", "en"},
		{"story_narrator", "hi"},
		{"", ""},
		{"robot_overlord", "fr"},
		{"LEARNING_BUDDY", "EN"},
	}

	for name, snap := range snaps {
		for _, in := range inputs {
			got := snap.Resolve(in.personality, in.language)
			if got.VendorID == 0 {
				t.Errorf("%s: Resolve(%q, %q) returned zero record",
					name, in.personality, in.language)
			}
		}
	}
}

func TestFallbackSnapshotIsSentinelEverywhere(t *testing.T) {
	snap := Fallback()
	for _, p := range All {
		for _, l := range Languages {
			got := snap.Resolve(string(p), string(l))
			if got.VendorID != SentinelVendorID {
				t.Errorf("Resolve(%s, %s) = %d, want sentinel", p, l, got.VendorID)
			}
		}
	}
	if !snap.Degraded() {
		t.Error("fallback snapshot should report degraded")
	}
}

func TestBuildEmptyCatalogYieldsFallback(t *testing.T) {
	snap := Build(nil)
	if !snap.Degraded() {
		t.Error("empty catalog should yield the fallback snapshot")
	}
}

func TestBuildUnsortedInputIsRanked(t *testing.T) {
	snap := Build([]catalog.VoiceRecord{
		voice(1, vendors.LanguageEnglish, 2.0, "nondescript"),
		voice(2, vendors.LanguageEnglish, 7.0, "nondescript"),
	})
	got := snap.Resolve(string(FriendlyCompanion), "en")
	if got.VendorID != 2 {
		t.Errorf("expected best-scored voice 2, got %d", got.VendorID)
	}
}

func TestNormalize(t *testing.T) {
	if Normalize("story_narrator") != StoryNarrator {
		t.Error("known personality mangled")
	}
	if Normalize("unknown") != FriendlyCompanion {
		t.Error("unknown personality should default to friendly_companion")
	}
	if !Known("learning_buddy") || Known("story_teller") {
		t.Error("Known should match supported personalities exactly")
	}
	if NormalizeLanguage("hi") != LanguageHindi {
		t.Error("known language mangled")
	}
	if NormalizeLanguage("xx") != LanguageEnglish {
		t.Error("unknown language should default to en")
	}
	if LanguageHindi.VendorCode() != vendors.LanguageHindi {
		t.Error("hindi vendor code mismatch")
	}
}
