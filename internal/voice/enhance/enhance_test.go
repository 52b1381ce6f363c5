package enhance

import (
	"slices"
	"strings"
	"testing"

	"github.com/buddybot/buddyvoice/internal/voice/persona"
)

func newTestEnhancer(seed int64) *Enhancer {
	return NewEnhancer(NewLoader(""), seed)
}

func TestEnhanceEmptyInputUnchanged(t *testing.T) {
	e := newTestEnhancer(1)
	for _, in := range []string{"", "   ", "\n\t"} {
		if got := e.Enhance(in, persona.FriendlyCompanion); got != in {
			t.Errorf("Enhance(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestEnhanceInsertsPauses(t *testing.T) {
	e := newTestEnhancer(1)
	got := e.Enhance("Hi there. How are you? Great! Yes", persona.FriendlyCompanion)

	words := strings.Fields(got)
	for _, want := range []string{"there...", "you?...", "Great!..."} {
		if !slices.Contains(words, want) {
			t.Errorf("enhanced output %q missing pause token %q", got, want)
		}
	}
}

func TestEnhancePreservesWordsAsSubsequence(t *testing.T) {
	// No sentence punctuation, so the pause step leaves every word intact
	// and only the probabilistic insertions can add tokens.
	const text = "the quick brown fox jumps over the lazy dog today"
	original := strings.Fields(text)

	for seed := int64(1); seed <= 200; seed++ {
		e := newTestEnhancer(seed)
		words := strings.Fields(e.Enhance(text, persona.StoryNarrator))

		i := 0
		for _, w := range words {
			if i < len(original) && w == original[i] {
				i++
			}
		}
		if i != len(original) {
			t.Fatalf("seed %d: original words not preserved in %q", seed, words)
		}
		// At most one filler and one parenthetical can be added.
		if len(words) > len(original)+2 {
			t.Fatalf("seed %d: too many inserted tokens: %q", seed, words)
		}
	}
}

func TestEnhanceEventuallyVaries(t *testing.T) {
	const text = "the quick brown fox jumps over the lazy dog today"

	varied := false
	for seed := int64(1); seed <= 500; seed++ {
		if newTestEnhancer(seed).Enhance(text, persona.LearningBuddy) != text {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("no seed triggered the probabilistic enhancement paths")
	}
}

func TestEnhanceShortTextNeverGetsFiller(t *testing.T) {
	// Five words or fewer: the filler step must not fire regardless of
	// the random draw; only the parenthetical prefix may appear.
	const text = "one two three four five"
	for seed := int64(1); seed <= 200; seed++ {
		got := newTestEnhancer(seed).Enhance(text, persona.FriendlyCompanion)
		if !strings.HasSuffix(got, text) {
			t.Fatalf("seed %d: short text body was modified: %q", seed, got)
		}
	}
}

func TestEnhanceSameSeedSameOutput(t *testing.T) {
	const text = "a story about a brave little robot and a kind fox"
	a := newTestEnhancer(42).Enhance(text, persona.StoryNarrator)
	b := newTestEnhancer(42).Enhance(text, persona.StoryNarrator)
	if a != b {
		t.Errorf("same seed produced different output: %q vs %q", a, b)
	}
}
