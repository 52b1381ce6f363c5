package catalog

import (
	"time"

	"github.com/pitabwire/frame/data"

	"github.com/buddybot/buddyvoice/internal/voice/vendors"
)

// VoiceRecord is one cached vendor voice, filtered and scored at cache-fill
// time. The cache holds female voices only; that filter is product policy,
// not configuration.
type VoiceRecord struct {
	data.BaseModel

	VendorID         int       `gorm:"not null;uniqueIndex:idx_voice_vendor_id"        json:"vendor_id"`
	Name             string    `gorm:"type:varchar(255)"                               json:"name"`
	Gender           int       `gorm:"not null;index:idx_voice_profile"                json:"gender"`
	Age              int       `gorm:"not null;index:idx_voice_profile"                json:"age"`
	Language         int       `gorm:"not null;index:idx_voice_profile"                json:"language"`
	Description      string    `gorm:"type:text"                                       json:"description"`
	IsPublished      bool      `gorm:"default:false"                                   json:"is_published"`
	SuitabilityScore float64   `gorm:"default:0"                                       json:"suitability_score"`
	CachedAt         time.Time `json:"cached_at"`
}

func (VoiceRecord) TableName() string { return "voice_cache" }

// FilterAndScore converts a vendor catalog into cache records: female voices
// only, malformed entries dropped, each survivor scored for kid-friendliness.
func FilterAndScore(voices []vendors.Voice, now time.Time) []VoiceRecord {
	records := make([]VoiceRecord, 0, len(voices))
	for _, v := range voices {
		if v.Gender != vendors.GenderFemale {
			continue
		}
		if v.ID <= 0 {
			continue
		}
		records = append(records, VoiceRecord{
			VendorID:         v.ID,
			Name:             v.Name,
			Gender:           v.Gender,
			Age:              v.Age,
			Language:         v.Language,
			Description:      v.Description,
			IsPublished:      v.IsPublished,
			SuitabilityScore: SuitabilityScore(v.Age, v.Description),
			CachedAt:         now,
		})
	}
	return records
}
