package entity

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrNoFileProvided      = errors.New("no file provided")
	ErrFileTooLarge        = errors.New("file too large")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrSummarizationFailed = errors.New("summarization failed")
	ErrUnexpectedFault     = errors.New("unexpected fault")
)

// UploadedAudio is the raw upload for a single request.
type UploadedAudio struct {
	Data        []byte
	Filename    string
	ContentType string
}

func (a UploadedAudio) Empty() bool {
	return len(a.Data) == 0
}

type TranscribeRequest struct {
	AudioPath string
	Filename  string
}

// PipelineResponse is the JSON body of every /api/transcribe response.
// Build it with NewPipelineResponse so the lengths match the texts.
type PipelineResponse struct {
	Transcription       string `json:"transcription"`
	Summary             string `json:"summary"`
	TranscriptionLength int    `json:"transcriptionLength"`
	SummaryLength       int    `json:"summaryLength"`
	Timestamp           string `json:"timestamp"`
}

func NewPipelineResponse(transcription, summary string) *PipelineResponse {
	return newPipelineResponse(transcription, summary, time.Now())
}

func newPipelineResponse(transcription, summary string, now time.Time) *PipelineResponse {
	return &PipelineResponse{
		Transcription:       transcription,
		Summary:             summary,
		TranscriptionLength: utf8.RuneCountInString(transcription),
		SummaryLength:       utf8.RuneCountInString(summary),
		Timestamp:           now.UTC().Format(time.RFC3339Nano),
	}
}

// Blank reports whether text has no non-whitespace content.
func Blank(text string) bool {
	return strings.TrimSpace(text) == ""
}
