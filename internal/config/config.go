package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application settings, populated from the environment.
type Config struct {
	Port        string `env:"PORT" envDefault:"8000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Language model (Groq, OpenAI-compatible API)
	GroqAPIKey      string  `env:"GROQ_API_KEY,required"`
	GroqBaseURL     string  `env:"GROQ_BASE_URL"`
	ChatModel       string  `env:"GROQ_MODEL_CHAT" envDefault:"llama-3.3-70b-versatile"`
	ChatTemperature float64 `env:"CHAT_TEMPERATURE" envDefault:"0.7"`
	ChatMaxTokens   int     `env:"CHAT_MAX_TOKENS" envDefault:"1024"`

	// PromptMode selects the prompt assembly strategy: "messages" for
	// discrete role-tagged turns, "transcript" for one flattened block
	// (for completion-style models).
	PromptMode string `env:"PROMPT_MODE" envDefault:"messages"`

	// Speech
	WhisperModel  string `env:"WHISPER_MODEL" envDefault:"whisper-large-v3"`
	TTSBaseURL    string `env:"TTS_BASE_URL"`
	MaxAudioBytes int64  `env:"MAX_AUDIO_BYTES" envDefault:"26214400"` // 25 MB, the Whisper upload limit

	// Per-IP rate limit for the speech endpoints
	SpeechRatePerSecond int `env:"SPEECH_RATE_PER_SECOND" envDefault:"2"`
	SpeechRateBurst     int `env:"SPEECH_RATE_BURST" envDefault:"5"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.PromptMode != "messages" && cfg.PromptMode != "transcript" {
		return nil, fmt.Errorf("invalid PROMPT_MODE %q (want \"messages\" or \"transcript\")", cfg.PromptMode)
	}
	return cfg, nil
}
