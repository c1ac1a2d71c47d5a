package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xilidan/audio-transcriber/pkg/logger"
	"github.com/xilidan/audio-transcriber/services/transcribe/consts"
	"github.com/xilidan/audio-transcriber/services/transcribe/entity"
	"github.com/xilidan/audio-transcriber/services/transcribe/storage"
)

// Transcriber turns an audio file into text. Implementations must honor ctx
// cancellation; the pipeline bounds every call with its request timeout.
type Transcriber interface {
	Transcribe(ctx context.Context, req entity.TranscribeRequest) (string, error)
}

// Summarizer turns a prompt into generated text. Same cancellation contract as Transcriber.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Usecase always returns a response body that can be written as is. A non-nil
// error only classifies the failure (see the entity sentinels).
type Usecase interface {
	TranscribeAndSummarize(ctx context.Context, audio *entity.UploadedAudio) (*entity.PipelineResponse, error)
	TranscribeOnly(ctx context.Context, audio *entity.UploadedAudio) (*entity.PipelineResponse, error)
}

type usecase struct {
	transcriber Transcriber
	summarizer  Summarizer
	storage     storage.Storage
	timeout     time.Duration
}

// New builds the pipeline. A zero timeout leaves the caller's deadline as the only bound.
func New(transcriber Transcriber, summarizer Summarizer, storage storage.Storage, timeout time.Duration) Usecase {
	return &usecase{
		transcriber: transcriber,
		summarizer:  summarizer,
		storage:     storage,
		timeout:     timeout,
	}
}

func (u *usecase) TranscribeAndSummarize(ctx context.Context, audio *entity.UploadedAudio) (*entity.PipelineResponse, error) {
	log := logger.With(ctx, slog.String("mode", "full")).With(uploadAttrs(audio)...)
	log.Info("received transcription request")

	if audio == nil || audio.Empty() {
		log.Warn("empty file uploaded")
		return entity.NewPipelineResponse(consts.MsgNoFile, consts.MsgUploadHint), entity.ErrNoFileProvided
	}

	transcript, summary, kind, cause := u.run(logger.WithContext(ctx, log), audio)
	if kind != nil {
		log.Error("failed to process transcription request", slog.String("error", cause.Error()))
		return entity.NewPipelineResponse(consts.MsgProcessFailed, consts.MsgErrorDetails+cause.Error()),
			fmt.Errorf("%w: %w", kind, cause)
	}

	return entity.NewPipelineResponse(transcript, summary), nil
}

func (u *usecase) TranscribeOnly(ctx context.Context, audio *entity.UploadedAudio) (*entity.PipelineResponse, error) {
	log := logger.With(ctx, slog.String("mode", "summary-only")).With(uploadAttrs(audio)...)
	log.Info("received summary-only request")

	if audio == nil || audio.Empty() {
		log.Warn("empty file uploaded")
		return entity.NewPipelineResponse("", consts.MsgSummaryOnlyNoFile), entity.ErrNoFileProvided
	}

	_, summary, kind, cause := u.run(logger.WithContext(ctx, log), audio)
	if kind != nil {
		log.Error("failed to process summary-only request", slog.String("error", cause.Error()))
		return entity.NewPipelineResponse("", consts.MsgSummaryOnlyFailed+cause.Error()),
			fmt.Errorf("%w: %w", kind, cause)
	}

	return entity.NewPipelineResponse("", summary), nil
}

// run persists the upload, transcribes it and summarizes the transcript. kind
// is one of the entity sentinels when the run is fatal, cause carries the
// collaborator's message for the response body.
func (u *usecase) run(ctx context.Context, audio *entity.UploadedAudio) (transcript, summary string, kind, cause error) {
	log := logger.FromContext(ctx)

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	path, err := u.storage.Create(ctx, audio.Filename, audio.Data)
	if err != nil {
		return "", "", entity.ErrTranscriptionFailed, err
	}
	log.Info("created temporary file", slog.String("path", path), slog.Int("size", len(audio.Data)))

	defer func() {
		if err := u.storage.Remove(context.WithoutCancel(ctx), path); err != nil {
			log.Error("failed to delete temporary file", slog.String("path", path), slog.String("error", err.Error()))
			return
		}
		log.Info("temporary file deleted", slog.String("path", path))
	}()

	log.Info("starting audio transcription")
	transcript, kind, cause = u.transcribe(ctx, entity.TranscribeRequest{
		AudioPath: path,
		Filename:  audio.Filename,
	})
	if kind != nil {
		return "", "", kind, cause
	}
	log.Info("transcription completed", slog.Int("length", len([]rune(transcript))))

	log.Info("generating summary")
	summary = u.summarize(ctx, transcript)
	log.Info("summary generated", slog.Int("length", len([]rune(summary))))

	return transcript, summary, nil, nil
}

func (u *usecase) transcribe(ctx context.Context, req entity.TranscribeRequest) (text string, kind, cause error) {
	defer func() {
		if r := recover(); r != nil {
			text, kind, cause = "", entity.ErrUnexpectedFault, fmt.Errorf("%v", r)
		}
	}()

	text, err := u.transcriber.Transcribe(ctx, req)
	if err != nil {
		return "", entity.ErrTranscriptionFailed, err
	}
	return text, nil, nil
}

// summarize never fails the request: errors and panics become the summary text.
func (u *usecase) summarize(ctx context.Context, transcript string) (summary string) {
	log := logger.FromContext(ctx)

	if entity.Blank(transcript) {
		log.Warn("no content to summarize, transcription is empty")
		return consts.MsgNoContent
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("summarizer panicked", slog.Any("panic", r))
			summary = consts.MsgSummaryError + fmt.Sprint(r)
		}
	}()

	text, err := u.summarizer.Summarize(ctx, fmt.Sprintf(consts.SummaryPrompt, transcript))
	if err != nil {
		log.Warn("failed to generate summary",
			slog.String("error", fmt.Errorf("%w: %w", entity.ErrSummarizationFailed, err).Error()))
		return consts.MsgSummaryError + err.Error()
	}

	log.Info("summary generation successful")
	return text
}

func uploadAttrs(audio *entity.UploadedAudio) []any {
	if audio == nil {
		return nil
	}
	return []any{
		slog.String("filename", audio.Filename),
		slog.String("content_type", audio.ContentType),
	}
}
