package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/buddybot/buddyvoice/internal/voice/persona"
	"github.com/buddybot/buddyvoice/internal/voice/vendors"
	"github.com/buddybot/buddyvoice/pkg/events"
)

// FailureReason classifies why a synthesis attempt produced no audio.
type FailureReason string

const (
	ReasonVoiceUnavailable FailureReason = "voice_unavailable"
	ReasonSubmitFailed     FailureReason = "submit_failed"
	ReasonPollFailed       FailureReason = "poll_failed"
	ReasonPollTimeout      FailureReason = "poll_timeout"
	ReasonRetrieveFailed   FailureReason = "retrieve_failed"
)

// SynthesisError tags a synthesis failure with its reason. It stays inside
// the pipeline: GenerateTTS collapses it to nil audio so callers degrade
// to text-only delivery instead of handling errors.
type SynthesisError struct {
	Reason FailureReason
	Err    error
}

func (e *SynthesisError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// GenerateTTS synthesizes speech for the given text. It never returns an
// error: nil audio is the only failure signal, and the reason goes to the
// log and the event stream.
func (p *Pipeline) GenerateTTS(ctx context.Context, text, personality, language string) []byte {
	jobID := xid.New().String()
	start := time.Now()

	audio, synthErr := p.synthesize(ctx, jobID, text, personality, language)
	durationMs := time.Since(start).Milliseconds()

	if synthErr != nil {
		slog.WarnContext(ctx, "tts generation failed",
			slog.String("job_id", jobID),
			slog.String("personality", string(persona.Normalize(personality))),
			slog.String("language", string(persona.NormalizeLanguage(language))),
			slog.String("reason", string(synthErr.Reason)),
			slog.Int64("duration_ms", durationMs),
			slog.String("error", synthErr.Error()))
		p.emit(ctx, events.TTSFailed, jobID, events.TTSFailedData{
			JobID:      jobID,
			Reason:     string(synthErr.Reason),
			DurationMs: durationMs,
		})
		return nil
	}

	slog.InfoContext(ctx, "tts generated",
		slog.String("job_id", jobID),
		slog.Int("audio_bytes", len(audio)),
		slog.Int64("duration_ms", durationMs))
	p.emit(ctx, events.TTSGenerated, jobID, events.TTSGeneratedData{
		JobID:      jobID,
		AudioBytes: len(audio),
		DurationMs: durationMs,
	})
	return audio
}

func (p *Pipeline) synthesize(ctx context.Context, jobID, text, personality, language string) ([]byte, *SynthesisError) {
	voice := p.ResolveVoice(personality, language)
	if voice.VendorID == persona.SentinelVendorID {
		// The vendor integration is unhealthy; do not even attempt a call.
		return nil, &SynthesisError{Reason: ReasonVoiceUnavailable}
	}

	pers := persona.Normalize(personality)
	lang := persona.NormalizeLanguage(language)
	enhanced := p.enhancer.Enhance(text, pers)

	audio, err := p.vendor.Synthesize(ctx, vendors.SynthesisRequest{
		Text:     enhanced,
		VoiceID:  voice.VendorID,
		Language: lang.VendorCode(),
	})
	if err != nil {
		return nil, &SynthesisError{Reason: classify(err), Err: err}
	}
	return audio, nil
}

func classify(err error) FailureReason {
	switch {
	case errors.Is(err, vendors.ErrSubmitFailed):
		return ReasonSubmitFailed
	case errors.Is(err, vendors.ErrPollTimeout):
		return ReasonPollTimeout
	case errors.Is(err, vendors.ErrPollFailed):
		return ReasonPollFailed
	default:
		return ReasonRetrieveFailed
	}
}
