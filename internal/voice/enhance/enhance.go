// Package enhance makes synthesized speech sound less robotic by inserting
// pauses, occasional filler words, and personality-flavored expressions
// before the text reaches the TTS vendor.
package enhance

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/buddybot/buddyvoice/internal/voice/persona"
)

const (
	fillerChance        = 0.10
	parentheticalChance = 0.05
	fillerMinWords      = 5
)

// pauseReplacer stretches sentence boundaries into ellipsis pauses.
var pauseReplacer = strings.NewReplacer(
	". ", "... ",
	"! ", "!... ",
	"? ", "?... ",
)

// Enhancer applies the enhancement steps with an injected random source so
// tests can seed the probabilistic paths.
type Enhancer struct {
	loader *Loader

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEnhancer creates an enhancer backed by the given template loader.
// A zero seed means a time-derived one.
func NewEnhancer(loader *Loader, seed int64) *Enhancer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Enhancer{
		loader: loader,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Enhance returns an enhanced copy of text for the given personality.
// Empty or whitespace-only input is returned unchanged. The result is not
// idempotent: the filler and parenthetical steps are probabilistic.
func (e *Enhancer) Enhance(text string, p persona.Personality) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	tpl := e.loader.Get(p)
	enhanced := pauseReplacer.Replace(text)

	e.mu.Lock()
	addFiller := e.rng.Float64() < fillerChance
	addParenthetical := e.rng.Float64() < parentheticalChance
	var fillerIdx, parenIdx int
	if len(tpl.Fillers) > 0 {
		fillerIdx = e.rng.Intn(len(tpl.Fillers))
	}
	if len(tpl.Parentheticals) > 0 {
		parenIdx = e.rng.Intn(len(tpl.Parentheticals))
	}
	e.mu.Unlock()

	if addFiller && len(tpl.Fillers) > 0 {
		words := strings.Fields(enhanced)
		if len(words) > fillerMinWords {
			mid := len(words) / 2
			withFiller := make([]string, 0, len(words)+1)
			withFiller = append(withFiller, words[:mid]...)
			withFiller = append(withFiller, tpl.Fillers[fillerIdx]+",")
			withFiller = append(withFiller, words[mid:]...)
			enhanced = strings.Join(withFiller, " ")
		}
	}

	if addParenthetical && len(tpl.Parentheticals) > 0 {
		enhanced = tpl.Parentheticals[parenIdx] + " " + enhanced
	}

	return enhanced
}
