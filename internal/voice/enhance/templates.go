package enhance

import "github.com/buddybot/buddyvoice/internal/voice/persona"

// Template flavors synthesized speech for one personality: a prosody
// directive plus candidate filler words and parenthetical expressions.
type Template struct {
	Prosody        string   `yaml:"prosody"`
	Fillers        []string `yaml:"fillers"`
	Parentheticals []string `yaml:"parentheticals"`
}

// Defaults returns the compiled-in template table. A template dir, when
// configured, overrides entries per personality.
func Defaults() map[persona.Personality]Template {
	return map[persona.Personality]Template{
		persona.FriendlyCompanion: {
			Prosody:        `<prosody rate="medium" pitch="+5%">`,
			Fillers:        []string{"well", "you know", "hmm"},
			Parentheticals: []string{"*chuckles*", "*giggles*"},
		},
		persona.StoryNarrator: {
			Prosody:        `<prosody rate="slow" pitch="-2%">`,
			Fillers:        []string{"now", "then", "and so"},
			Parentheticals: []string{"*whispers*", "*gasps*"},
		},
		persona.LearningBuddy: {
			Prosody:        `<prosody rate="medium" pitch="+8%">`,
			Fillers:        []string{"okay", "so", "let's see"},
			Parentheticals: []string{"*claps*", "*cheers*"},
		},
	}
}
