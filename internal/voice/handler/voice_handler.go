package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pitabwire/frame/workerpool"

	"github.com/buddybot/buddyvoice/internal/voice/pipeline"
	"github.com/buddybot/buddyvoice/internal/voice/vendors"
)

const maxRequestBodySize = 1 << 20 // 1 MiB

// VoiceHandler provides the REST endpoints of the voice service.
type VoiceHandler struct {
	pipe  *pipeline.Pipeline
	store pipeline.VoiceStore
	pool  workerpool.WorkerPool
}

// NewVoiceHandler creates a new voice API handler.
func NewVoiceHandler(pipe *pipeline.Pipeline, store pipeline.VoiceStore, pool workerpool.WorkerPool) *VoiceHandler {
	return &VoiceHandler{pipe: pipe, store: store, pool: pool}
}

// RegisterRoutes registers all voice API routes on the given mux.
func (h *VoiceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/tts", h.Synthesize)
	mux.HandleFunc("GET /api/v1/voices", h.ListVoices)
	mux.HandleFunc("POST /api/v1/voices/refresh", h.RefreshVoices)
	mux.HandleFunc("GET /healthz", h.Health)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// Synthesize handles POST /api/v1/tts. Audio comes back as raw bytes; a
// pipeline that produced nothing answers with audio_available=false, never
// an error status, so companion clients degrade to text.
func (h *VoiceHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	audio := h.pipe.GenerateTTS(r.Context(), req.Text, req.Personality, req.Language)
	if audio == nil {
		writeJSON(w, http.StatusOK, TTSUnavailableResponse{AudioAvailable: false})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

// ListVoices handles GET /api/v1/voices.
func (h *VoiceHandler) ListVoices(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListBySuitability(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing voices failed")
		return
	}

	resp := make([]VoiceResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, VoiceResponse{
			VendorID:         rec.VendorID,
			Name:             rec.Name,
			Gender:           rec.Gender,
			Age:              rec.Age,
			Language:         rec.Language,
			Description:      rec.Description,
			IsPublished:      rec.IsPublished,
			SuitabilityScore: rec.SuitabilityScore,
			CachedAt:         rec.CachedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// RefreshVoices handles POST /api/v1/voices/refresh. The refresh runs on
// the worker pool; concurrent requests serialize inside the pipeline.
func (h *VoiceHandler) RefreshVoices(w http.ResponseWriter, r *http.Request) {
	refresh := func() {
		ctx := context.Background()
		if err := h.pipe.RefreshVoiceCache(ctx); err != nil {
			slog.Warn("admin-triggered voice refresh failed",
				slog.String("error", err.Error()))
			return
		}
		if err := h.pipe.BuildPersonalityMap(ctx); err != nil {
			slog.Warn("admin-triggered map rebuild failed",
				slog.String("error", err.Error()))
		}
	}

	if h.pool != nil {
		if err := h.pool.Submit(r.Context(), refresh); err != nil {
			writeError(w, http.StatusServiceUnavailable, "refresh could not be scheduled")
			return
		}
	} else {
		go refresh()
	}

	writeJSON(w, http.StatusAccepted, RefreshResponse{Status: "refresh scheduled"})
}

// Health handles GET /healthz.
func (h *VoiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Degraded: h.pipe.Degraded(),
		Vendors:  vendors.TTS.List(),
	})
}
