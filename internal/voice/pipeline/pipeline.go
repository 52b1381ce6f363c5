// Package pipeline wires the voice catalog, persona selection, text
// enhancement, and the TTS vendor into the speech generation flow the
// conversation layer calls.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/buddybot/buddyvoice/internal/voice/catalog"
	"github.com/buddybot/buddyvoice/internal/voice/enhance"
	"github.com/buddybot/buddyvoice/internal/voice/persona"
	"github.com/buddybot/buddyvoice/internal/voice/vendors"
	"github.com/buddybot/buddyvoice/pkg/events"
)

// ErrEmptyCatalog is reported when the vendor returns no suitable voices.
var ErrEmptyCatalog = errors.New("vendor catalog yielded no suitable voices")

// Pipeline owns the voice cache, the current persona snapshot, and the
// vendor client. Refreshes serialize on a mutex; resolutions read an
// atomically-swapped immutable snapshot, so in-flight synthesis never
// races a refresh.
type Pipeline struct {
	vendor    vendors.TTSVendor
	store     VoiceStore
	enhancer  *enhance.Enhancer
	publisher *events.Publisher

	refreshMu sync.Mutex
	snapshot  atomic.Pointer[persona.Snapshot]
}

// Option configures optional pipeline collaborators.
type Option func(*Pipeline)

// WithEventPublisher attaches an event publisher; without one the pipeline
// simply does not emit events.
func WithEventPublisher(pub *events.Publisher) Option {
	return func(p *Pipeline) {
		p.publisher = pub
	}
}

// New creates a pipeline. The vendor and store are mandatory; a pipeline
// without them is unusable and construction fails rather than degrading.
func New(vendor vendors.TTSVendor, store VoiceStore, enhancer *enhance.Enhancer, opts ...Option) (*Pipeline, error) {
	if vendor == nil {
		return nil, fmt.Errorf("pipeline requires a TTS vendor")
	}
	if store == nil {
		return nil, fmt.Errorf("pipeline requires a voice store")
	}
	if enhancer == nil {
		return nil, fmt.Errorf("pipeline requires an enhancer")
	}

	p := &Pipeline{
		vendor:   vendor,
		store:    store,
		enhancer: enhancer,
	}
	p.snapshot.Store(persona.Fallback())

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Initialize runs the startup refresh and map build. Failures are absorbed
// into the fallback bootstrap so the service always comes up.
func (p *Pipeline) Initialize(ctx context.Context) {
	if err := p.RefreshVoiceCache(ctx); err != nil {
		slog.WarnContext(ctx, "voice cache refresh failed, running on fallback voice",
			slog.String("error", err.Error()))
		return
	}
	if err := p.BuildPersonalityMap(ctx); err != nil {
		slog.WarnContext(ctx, "personality map build failed, running on fallback voice",
			slog.String("error", err.Error()))
	}
}

// RefreshVoiceCache replaces the voice cache with the vendor's current
// catalog, filtered to female voices and scored. Any failure, and an empty
// filtered catalog, install the fallback snapshot; the returned error then
// says why the cache is degraded.
func (p *Pipeline) RefreshVoiceCache(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := time.Now()

	voices, err := p.vendor.ListVoices(ctx)
	if err != nil {
		p.bootstrap()
		return fmt.Errorf("list voices: %w", err)
	}

	records := catalog.FilterAndScore(voices, time.Now().UTC())
	if len(records) == 0 {
		p.bootstrap()
		return ErrEmptyCatalog
	}

	if err := p.store.ReplaceAll(ctx, records); err != nil {
		p.bootstrap()
		return fmt.Errorf("replace voice cache: %w", err)
	}
	if err := p.store.EnsureIndexes(ctx); err != nil {
		slog.WarnContext(ctx, "ensure voice cache indexes",
			slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "voice cache refreshed",
		slog.Int("vendor_voices", len(voices)),
		slog.Int("cached_voices", len(records)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	p.emit(ctx, events.VoiceCacheRefreshed, "", events.CacheRefreshedData{
		VoiceCount: len(records),
		DurationMs: time.Since(start).Milliseconds(),
	})
	return nil
}

// BuildPersonalityMap derives a fresh persona snapshot from the cache and
// swaps it in. It does not run automatically after a cache change; callers
// refresh then rebuild.
func (p *Pipeline) BuildPersonalityMap(ctx context.Context) error {
	records, err := p.store.ListBySuitability(ctx)
	if err != nil {
		p.bootstrap()
		return fmt.Errorf("read voice cache: %w", err)
	}

	p.snapshot.Store(persona.Build(records))
	return nil
}

// ResolveVoice returns the voice for a personality and language. Total:
// any input yields a usable record, possibly the sentinel.
func (p *Pipeline) ResolveVoice(personality, language string) catalog.VoiceRecord {
	return p.snapshot.Load().Resolve(personality, language)
}

// Degraded reports whether the pipeline is running on the sentinel voice.
func (p *Pipeline) Degraded() bool {
	return p.snapshot.Load().Degraded()
}

// Close releases the vendor's HTTP resources.
func (p *Pipeline) Close() error {
	return p.vendor.Close()
}

func (p *Pipeline) bootstrap() {
	p.snapshot.Store(persona.Fallback())
}

func (p *Pipeline) emit(ctx context.Context, et events.EventType, jobID string, data any) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Emit(ctx, et, jobID, data); err != nil {
		slog.WarnContext(ctx, "emit event",
			slog.String("event_type", string(et)),
			slog.String("error", err.Error()))
	}
}
