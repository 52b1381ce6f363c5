package enhance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/buddybot/buddyvoice/internal/voice/persona"
)

func TestLoaderDefaultsWithoutDir(t *testing.T) {
	l := NewLoader("")
	if err := l.LoadAll(); err != nil {
		t.Fatalf("LoadAll with empty dir: %v", err)
	}

	for _, p := range persona.All {
		tpl := l.Get(p)
		if tpl.Prosody == "" {
			t.Errorf("personality %s has no default prosody", p)
		}
		if len(tpl.Fillers) == 0 || len(tpl.Parentheticals) == 0 {
			t.Errorf("personality %s has empty default word lists", p)
		}
	}
}

func TestLoaderOverridesFromYAML(t *testing.T) {
	dir := t.TempDir()
	content := `story_narrator:
  prosody: '<prosody rate="x-slow">'
  fillers: ["once upon a time"]
  parentheticals: ["*hushed*"]
`
	if err := os.WriteFile(filepath.Join(dir, "narrator.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)
	if err := l.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	tpl := l.Get(persona.StoryNarrator)
	if tpl.Prosody != `<prosody rate="x-slow">` {
		t.Errorf("override not applied: %q", tpl.Prosody)
	}
	if len(tpl.Fillers) != 1 || tpl.Fillers[0] != "once upon a time" {
		t.Errorf("filler override not applied: %v", tpl.Fillers)
	}

	// Untouched personalities keep their defaults.
	if l.Get(persona.FriendlyCompanion).Prosody != Defaults()[persona.FriendlyCompanion].Prosody {
		t.Error("unrelated personality lost its default template")
	}
}

func TestLoaderRejectsUnknownPersonalityKey(t *testing.T) {
	dir := t.TempDir()
	content := `story_teller:
  prosody: '<prosody rate="fast">'
  fillers: ["whoops"]
  parentheticals: ["*typo*"]
`
	if err := os.WriteFile(filepath.Join(dir, "typo.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)
	if err := l.LoadAll(); err == nil {
		t.Error("expected error on unknown personality key")
	}

	// The typo'd key must not land on the normalization fallback.
	tpl := l.Get(persona.FriendlyCompanion)
	want := Defaults()[persona.FriendlyCompanion]
	if tpl.Prosody != want.Prosody {
		t.Errorf("friendly companion prosody replaced: %q", tpl.Prosody)
	}
	if len(tpl.Fillers) != len(want.Fillers) || tpl.Fillers[0] != want.Fillers[0] {
		t.Errorf("friendly companion fillers replaced: %v", tpl.Fillers)
	}
}

func TestLoaderRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)
	if err := l.LoadAll(); err == nil {
		t.Error("expected error on malformed YAML")
	}

	// Defaults remain active after a failed load.
	if l.Get(persona.LearningBuddy).Prosody == "" {
		t.Error("defaults lost after failed load")
	}
}
