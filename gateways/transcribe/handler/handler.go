package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xilidan/audio-transcriber/pkg/json"
	"github.com/xilidan/audio-transcriber/services/transcribe/consts"
	"github.com/xilidan/audio-transcriber/services/transcribe/usecase"
)

const serviceName = "Audio Transcription Service"

// Options carries the settings the handler reports or enforces. A zero
// MaxUploadSize falls back to the Whisper upload limit.
type Options struct {
	MaxUploadSize    int64
	APIKeyConfigured bool
	Profile          string
}

type Handler struct {
	usecase usecase.Usecase
	opts    Options
	log     *slog.Logger
}

func New(usecase usecase.Usecase, opts Options, log *slog.Logger) *Handler {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = consts.MaxAudioSize
	}
	log.Debug("creating new handler",
		slog.Int64("max_upload_size", opts.MaxUploadSize),
		slog.String("profile", opts.Profile))
	return &Handler{
		usecase: usecase,
		opts:    opts,
		log:     log,
	}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

type ConfigCheckResponse struct {
	Status              string `json:"status"`
	OpenAIKeyConfigured bool   `json:"openai_key_configured"`
	Profile             string `json:"profile"`
	Timestamp           string `json:"timestamp"`
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	h.log.Debug("registering HTTP routes")
	router.Get("/", h.Home)
	router.Get("/health", h.HealthCheck)
	router.Get("/config-check", h.ConfigCheck)
	router.Group(func(r chi.Router) {
		r.Use(h.recoverPipeline)
		r.Post("/api/transcribe", h.Transcribe)
		r.Post("/api/transcribe/summary-only", h.TranscribeSummaryOnly)
	})
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		json.WriteError(w, http.StatusNotFound, errNotFound)
	})
	h.log.Info("all routes registered successfully")
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("health check request received",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("user_agent", r.UserAgent()))
	json.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Service:   serviceName,
		Timestamp: now(),
	})
}

func (h *Handler) ConfigCheck(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("config check request received", slog.String("remote_addr", r.RemoteAddr))
	profile := h.opts.Profile
	if profile == "" {
		profile = "default"
	}
	json.WriteJSON(w, http.StatusOK, ConfigCheckResponse{
		Status:              "Config Check",
		OpenAIKeyConfigured: h.opts.APIKeyConfigured,
		Profile:             profile,
		Timestamp:           now(),
	})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
