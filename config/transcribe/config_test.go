package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GRPC_PORT", "APP_PROFILE", "REQUEST_TIMEOUT", "MAX_UPLOAD_SIZE",
		"OPENAI_API_KEY", "TRANSCRIPTION_MODEL", "SUMMARY_MODEL", "LOG_LEVEL",
	} {
		// Setenv restores the original value on cleanup.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.GRPCPort != 0 {
		t.Errorf("GRPCPort = %d, want 0", cfg.GRPCPort)
	}
	if cfg.Profile != "default" {
		t.Errorf("Profile = %q, want default", cfg.Profile)
	}
	if cfg.RequestTimeout != 5*time.Minute {
		t.Errorf("RequestTimeout = %v, want 5m", cfg.RequestTimeout)
	}
	if cfg.MaxUploadSize != 25*1024*1024 {
		t.Errorf("MaxUploadSize = %d, want 25MiB", cfg.MaxUploadSize)
	}
	if cfg.OpenAI.TranscriptionModel != "whisper-1" {
		t.Errorf("TranscriptionModel = %q, want whisper-1", cfg.OpenAI.TranscriptionModel)
	}
	if cfg.OpenAI.SummaryModel != "gpt-4o-mini" {
		t.Errorf("SummaryModel = %q, want gpt-4o-mini", cfg.OpenAI.SummaryModel)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_PROFILE", "prod")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.Profile != "prod" {
		t.Errorf("Profile = %q, want prod", cfg.Profile)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.OpenAI.APIKey)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want 2 entries", cfg.CORSOrigins)
	}
}

func TestAPIKeyConfigured(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"empty", "", false},
		{"placeholder", PlaceholderAPIKey, false},
		{"real key", "sk-abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := OpenAIConfig{APIKey: tt.key}
			if got := cfg.APIKeyConfigured(); got != tt.want {
				t.Errorf("APIKeyConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}
