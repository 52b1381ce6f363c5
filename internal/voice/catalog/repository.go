package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pitabwire/frame/datastore/pool"
)

// Repository provides access to the voice cache table.
type Repository struct {
	pool pool.Pool
}

// NewRepository creates a new voice cache repository.
func NewRepository(pool pool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) db(ctx context.Context, readOnly bool) *gorm.DB {
	return r.pool.DB(ctx, readOnly)
}

// Migrate creates or updates the voice_cache table, including the indexes
// declared on VoiceRecord. Called once at startup so a fresh database works
// without an out-of-band schema step.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db(ctx, false).AutoMigrate(&VoiceRecord{}); err != nil {
		return fmt.Errorf("migrate voice cache: %w", err)
	}
	return nil
}

// ReplaceAll swaps the entire cache for the given records in one
// transaction. The cache is replace-not-merge: a voice absent from the new
// set is gone after this call.
func (r *Repository) ReplaceAll(ctx context.Context, records []VoiceRecord) error {
	return r.db(ctx, false).Transaction(func(tx *gorm.DB) error {
		err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&VoiceRecord{}).Error
		if err != nil {
			return fmt.Errorf("clear voice cache: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("insert voice cache: %w", err)
		}
		return nil
	})
}

// ListBySuitability returns all cached voices, best first.
func (r *Repository) ListBySuitability(ctx context.Context) ([]VoiceRecord, error) {
	var records []VoiceRecord
	err := r.db(ctx, true).Order("suitability_score DESC").Find(&records).Error
	return records, err
}

// Count returns the number of cached voices.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db(ctx, true).Model(&VoiceRecord{}).Count(&n).Error
	return n, err
}

// EnsureIndexes creates the compound (gender, age, language) index if it is
// missing. Safe to call on every refresh.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	m := r.db(ctx, false).Migrator()
	if m.HasIndex(&VoiceRecord{}, "idx_voice_profile") {
		return nil
	}
	return m.CreateIndex(&VoiceRecord{}, "idx_voice_profile")
}
