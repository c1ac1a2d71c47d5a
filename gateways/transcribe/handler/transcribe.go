package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/xilidan/audio-transcriber/pkg/json"
	"github.com/xilidan/audio-transcriber/services/transcribe/consts"
	"github.com/xilidan/audio-transcriber/services/transcribe/entity"
)

const (
	formField = "file"
	// memory kept by ParseMultipartForm before spilling parts to disk
	maxMemory = 32 << 20
)

var errNotFound = errors.New("not found")

type pipelineFunc func(ctx context.Context, audio *entity.UploadedAudio) (*entity.PipelineResponse, error)

func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "full", h.usecase.TranscribeAndSummarize, func(limit int64) *entity.PipelineResponse {
		return entity.NewPipelineResponse(consts.MsgFileTooLarge, tooLargeHint(limit))
	})
}

func (h *Handler) TranscribeSummaryOnly(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "summary-only", h.usecase.TranscribeOnly, func(limit int64) *entity.PipelineResponse {
		return entity.NewPipelineResponse("", consts.MsgFileTooLarge+". "+tooLargeHint(limit))
	})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, mode string, run pipelineFunc, tooLarge func(int64) *entity.PipelineResponse) {
	log := h.log.With(slog.String("mode", mode))
	log.Info("transcription request received",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("content_type", r.Header.Get("Content-Type")))

	audio, err := h.readUpload(w, r)
	if errors.Is(err, entity.ErrFileTooLarge) {
		log.Warn("upload exceeds limit", slog.Int64("limit", h.opts.MaxUploadSize))
		h.write(w, log, http.StatusRequestEntityTooLarge, tooLarge(h.opts.MaxUploadSize))
		return
	}
	if err != nil {
		// the pipeline turns a missing upload into its own 400 body
		log.Warn("no usable upload in request", slog.String("error", err.Error()))
		audio = &entity.UploadedAudio{}
	}

	resp, err := run(r.Context(), audio)
	status := statusFor(err)
	if err != nil {
		log.Warn("pipeline finished with error",
			slog.Int("status", status),
			slog.String("error", err.Error()))
	}
	h.write(w, log, status, resp)
}

// readUpload extracts the "file" multipart field. The body is capped at
// MaxUploadSize; exceeding it yields entity.ErrFileTooLarge.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*entity.UploadedAudio, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, uploadError(err)
	}
	defer r.MultipartForm.RemoveAll()

	f, header, err := r.FormFile(formField)
	if err != nil {
		return nil, uploadError(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, uploadError(err)
	}

	return &entity.UploadedAudio{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: %w", entity.ErrFileTooLarge, err)
	}
	if errors.Is(err, http.ErrMissingFile) {
		return entity.ErrNoFileProvided
	}
	return fmt.Errorf("failed to read upload: %w", err)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrNoFileProvided):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) write(w http.ResponseWriter, log *slog.Logger, status int, resp *entity.PipelineResponse) {
	if err := json.WriteJSON(w, status, resp); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
		return
	}
	log.Info("transcription response sent",
		slog.Int("status", status),
		slog.Int("transcription_length", resp.TranscriptionLength),
		slog.Int("summary_length", resp.SummaryLength))
}

// recoverPipeline turns a panic in an API handler into the unexpected error
// body. Once headers are out the response cannot be replaced, so the panic is
// only logged.
func (h *Handler) recoverPipeline(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log := h.log.With(slog.Any("panic", rec), slog.String("path", r.URL.Path))
			if ww.Status() != 0 {
				log.Error("panic after response was sent", slog.Int("status", ww.Status()))
				return
			}
			log.Error("unhandled panic in transcription handler")
			msg := fmt.Sprint(rec)
			h.write(ww, h.log, http.StatusInternalServerError,
				entity.NewPipelineResponse(consts.MsgUnexpected, consts.MsgUnexpectedDetails+msg))
		}()

		next.ServeHTTP(ww, r)
	})
}

func tooLargeHint(limit int64) string {
	return fmt.Sprintf("Maximum upload size is %d bytes.", limit)
}
