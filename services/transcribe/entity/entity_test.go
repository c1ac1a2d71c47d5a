package entity

import (
	"testing"
	"time"
)

func TestNewPipelineResponseLengths(t *testing.T) {
	tests := []struct {
		name          string
		transcription string
		summary       string
		wantT, wantS  int
	}{
		{"ascii", "hello world", "hi", 11, 2},
		{"empty", "", "No content to summarize.", 0, 24},
		{"multibyte counts characters", "héllo", "日本語", 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPipelineResponse(tt.transcription, tt.summary)
			if resp.TranscriptionLength != tt.wantT {
				t.Errorf("TranscriptionLength = %d, want %d", resp.TranscriptionLength, tt.wantT)
			}
			if resp.SummaryLength != tt.wantS {
				t.Errorf("SummaryLength = %d, want %d", resp.SummaryLength, tt.wantS)
			}
			if resp.Transcription != tt.transcription || resp.Summary != tt.summary {
				t.Errorf("texts not preserved: %+v", resp)
			}
		})
	}
}

func TestPipelineResponseTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 123000000, time.FixedZone("X", 3600))
	resp := newPipelineResponse("a", "b", now)

	if resp.Timestamp != "2024-05-01T11:30:00.123Z" {
		t.Errorf("Timestamp = %q", resp.Timestamp)
	}
	if _, err := time.Parse(time.RFC3339Nano, NewPipelineResponse("", "").Timestamp); err != nil {
		t.Errorf("timestamp is not RFC 3339: %v", err)
	}
}

func TestBlank(t *testing.T) {
	for text, want := range map[string]bool{
		"":        true,
		"   ":     true,
		"\n\t ":    true,
		" words ": false,
		"x":       false,
	} {
		if got := Blank(text); got != want {
			t.Errorf("Blank(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestUploadedAudioEmpty(t *testing.T) {
	if !(UploadedAudio{}).Empty() {
		t.Error("zero UploadedAudio should be empty")
	}
	if (UploadedAudio{Data: []byte{1}}).Empty() {
		t.Error("UploadedAudio with data should not be empty")
	}
}
