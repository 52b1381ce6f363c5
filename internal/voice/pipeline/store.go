package pipeline

import (
	"context"

	"github.com/buddybot/buddyvoice/internal/voice/catalog"
)

// VoiceStore is the persistence surface the pipeline needs for its voice
// cache. catalog.Repository is the production implementation.
type VoiceStore interface {
	ReplaceAll(ctx context.Context, records []catalog.VoiceRecord) error
	ListBySuitability(ctx context.Context) ([]catalog.VoiceRecord, error)
	EnsureIndexes(ctx context.Context) error
}
