package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	config "github.com/xilidan/audio-transcriber/config/transcribe"
	"github.com/xilidan/audio-transcriber/services/transcribe/entity"
)

var ErrEmptyCompletion = errors.New("chat completion returned no choices")

// NewClient builds a go-openai client. timeout bounds each HTTP round trip in
// addition to the per-request context deadline.
func NewClient(cfg *config.OpenAIConfig, timeout time.Duration) *goopenai.Client {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return goopenai.NewClientWithConfig(clientCfg)
}

type Transcriber struct {
	client   *goopenai.Client
	model    string
	language string
	log      *slog.Logger
}

func NewTranscriber(client *goopenai.Client, model, language string, log *slog.Logger) *Transcriber {
	if model == "" {
		model = goopenai.Whisper1
	}
	log.Debug("creating whisper transcriber",
		slog.String("model", model),
		slog.String("language", language))
	return &Transcriber{
		client:   client,
		model:    model,
		language: language,
		log:      log,
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, req entity.TranscribeRequest) (string, error) {
	t.log.Info("sending audio to whisper",
		slog.String("model", t.model),
		slog.String("file", filepath.Base(req.AudioPath)))

	resp, err := t.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    t.model,
		FilePath: req.AudioPath,
		Language: t.language,
		Format:   goopenai.AudioResponseFormatJSON,
	})
	if err != nil {
		t.log.Error("whisper request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	t.log.Debug("whisper response received", slog.Int("text_length", len(resp.Text)))
	return resp.Text, nil
}

type Summarizer struct {
	client      *goopenai.Client
	model       string
	temperature float32
	maxTokens   int
	log         *slog.Logger
}

func NewSummarizer(client *goopenai.Client, model string, temperature float32, maxTokens int, log *slog.Logger) *Summarizer {
	if model == "" {
		model = goopenai.GPT4oMini
	}
	log.Debug("creating chat summarizer",
		slog.String("model", model),
		slog.Float64("temperature", float64(temperature)),
		slog.Int("max_tokens", maxTokens))
	return &Summarizer{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		log:         log,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	s.log.Info("sending prompt to chat model",
		slog.String("model", s.model),
		slog.Int("prompt_length", len(prompt)))

	resp, err := s.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		s.log.Error("chat completion failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		s.log.Warn("chat completion returned no choices")
		return "", ErrEmptyCompletion
	}

	s.log.Debug("chat completion received",
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)))
	return resp.Choices[0].Message.Content, nil
}
