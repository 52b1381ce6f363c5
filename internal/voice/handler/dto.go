package handler

// TTSRequest is the body of POST /api/v1/tts.
type TTSRequest struct {
	Text        string `json:"text"`
	Personality string `json:"personality,omitempty"`
	Language    string `json:"language,omitempty"`
}

// TTSUnavailableResponse is returned when the pipeline produced no audio.
// Callers are expected to fall back to text-only delivery.
type TTSUnavailableResponse struct {
	AudioAvailable bool `json:"audio_available"`
}

// VoiceResponse is one catalog entry in GET /api/v1/voices.
type VoiceResponse struct {
	VendorID         int     `json:"vendor_id"`
	Name             string  `json:"name"`
	Gender           int     `json:"gender"`
	Age              int     `json:"age"`
	Language         int     `json:"language"`
	Description      string  `json:"description"`
	IsPublished      bool    `json:"is_published"`
	SuitabilityScore float64 `json:"suitability_score"`
	CachedAt         string  `json:"cached_at"`
}

// RefreshResponse acknowledges a scheduled cache refresh.
type RefreshResponse struct {
	Status string `json:"status"`
}

// HealthResponse reports service liveness and voice degradation.
type HealthResponse struct {
	Status   string   `json:"status"`
	Degraded bool     `json:"degraded"`
	Vendors  []string `json:"vendors"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
