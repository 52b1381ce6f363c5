package events

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of event flowing through the system.
type EventType string

const (
	VoiceCacheRefreshed EventType = "voice.cache.refreshed"
	TTSGenerated        EventType = "tts.generated"
	TTSFailed           EventType = "tts.failed"
)

// Envelope is the standard event wrapper published to the event bus.
type Envelope struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Source    string            `json:"source"`
	JobID     string            `json:"job_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Data      json.RawMessage   `json:"data"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// CacheRefreshedData is the payload for voice.cache.refreshed events.
type CacheRefreshedData struct {
	VoiceCount int   `json:"voice_count"`
	DurationMs int64 `json:"duration_ms"`
}

// TTSGeneratedData is the payload for tts.generated events.
type TTSGeneratedData struct {
	JobID      string `json:"job_id"`
	AudioBytes int    `json:"audio_bytes"`
	DurationMs int64  `json:"duration_ms"`
}

// TTSFailedData is the payload for tts.failed events.
type TTSFailedData struct {
	JobID      string `json:"job_id"`
	Reason     string `json:"reason"`
	DurationMs int64  `json:"duration_ms"`
}
