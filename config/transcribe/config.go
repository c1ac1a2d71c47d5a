package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// PlaceholderAPIKey is the value shipped in sample env files. It counts as unset.
const PlaceholderAPIKey = "your-api-key-here"

type Config struct {
	Port            int           `env:"PORT" env-default:"8080" env-description:"HTTP listen port"`
	GRPCPort        int           `env:"GRPC_PORT" env-default:"0" env-description:"gRPC health port, 0 disables it"`
	Profile         string        `env:"APP_PROFILE" env-default:"default" env-description:"runtime profile name"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" env-default:"5m" env-description:"upper bound for one pipeline run"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxUploadSize   int64         `env:"MAX_UPLOAD_SIZE" env-default:"26214400" env-description:"max multipart body size in bytes"`
	TempDir         string        `env:"TEMP_DIR" env-description:"scratch directory, defaults to the OS temp dir"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
	Log             LogConfig
	OpenAI          OpenAIConfig
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
	JSON  bool   `env:"LOG_JSON" env-default:"false"`
}

type OpenAIConfig struct {
	APIKey             string  `env:"OPENAI_API_KEY" env-description:"OpenAI API key"`
	BaseURL            string  `env:"OPENAI_BASE_URL" env-description:"override for OpenAI compatible gateways"`
	TranscriptionModel string  `env:"TRANSCRIPTION_MODEL" env-default:"whisper-1"`
	TranscriptionLang  string  `env:"TRANSCRIPTION_LANGUAGE"`
	SummaryModel       string  `env:"SUMMARY_MODEL" env-default:"gpt-4o-mini"`
	SummaryTemperature float32 `env:"SUMMARY_TEMPERATURE" env-default:"0.3"`
	SummaryMaxTokens   int     `env:"SUMMARY_MAX_TOKENS" env-default:"0"`
}

// APIKeyConfigured reports whether a usable OpenAI key is present.
func (c OpenAIConfig) APIKeyConfigured() bool {
	return c.APIKey != "" && c.APIKey != PlaceholderAPIKey
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("failed to read environment variables: " + err.Error())
	}

	return cfg
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
