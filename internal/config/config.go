package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tubescribe/pkg/prompt"
)

// Config holds all configuration for the tubescribe server.
type Config struct {
	Server     ServerConfig
	Jobs       JobsConfig
	Download   DownloadConfig
	Whisper    WhisperConfig
	Google     GoogleConfig
	Summarizer SummarizerConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type JobsConfig struct {
	TTL      time.Duration
	Capacity int
}

type DownloadConfig struct {
	Dir       string
	YTDLPPath string
}

type WhisperConfig struct {
	BinaryPath string
	ModelDir   string
	Language   string
	Threads    int
}

type GoogleConfig struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

type SummarizerConfig struct {
	GeminiAPIKey   string
	GeminiModel    string
	OllamaBaseURL  string
	OllamaModel    string
	MaxPromptRunes int
	Timeout        time.Duration
}

// Load reads configuration from environment variables and returns a validated
// Config. Returns an error with a descriptive message if any value is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("TUBESCRIBE_PORT", 8000),
			Env:  envString("TUBESCRIBE_ENV", "development"),
		},
		Jobs: JobsConfig{
			TTL:      envDuration("JOB_TTL", 24*time.Hour),
			Capacity: envInt("JOB_CAPACITY", 1000),
		},
		Download: DownloadConfig{
			Dir:       envString("DOWNLOAD_DIR", "downloads"),
			YTDLPPath: envString("YTDLP_PATH", "yt-dlp"),
		},
		Whisper: WhisperConfig{
			BinaryPath: envString("WHISPER_PATH", "whisper-cli"),
			ModelDir:   envString("WHISPER_MODEL_DIR", "models"),
			Language:   envString("WHISPER_LANGUAGE", "ko"),
			Threads:    envInt("WHISPER_THREADS", 4),
		},
		Google: GoogleConfig{
			APIKey:   os.Getenv("GOOGLE_SPEECH_API_KEY"),
			BaseURL:  envString("GOOGLE_SPEECH_BASE_URL", "https://speech.googleapis.com"),
			Language: envString("GOOGLE_SPEECH_LANGUAGE", "ko-KR"),
			Timeout:  envDuration("GOOGLE_SPEECH_TIMEOUT", 60*time.Second),
		},
		Summarizer: SummarizerConfig{
			GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
			GeminiModel:    envString("GEMINI_MODEL", "gemini-2.0-flash"),
			OllamaBaseURL:  envString("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:    envString("OLLAMA_MODEL", "llama3"),
			MaxPromptRunes: envInt("SUMMARIZE_MAX_PROMPT_RUNES", prompt.DefaultMaxRunes),
			Timeout:        envDuration("SUMMARIZE_TIMEOUT", 60*time.Second),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("TUBESCRIBE_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Jobs.TTL <= 0 {
		return fmt.Errorf("JOB_TTL must be positive, got %s", c.Jobs.TTL)
	}
	if c.Jobs.Capacity < 1 {
		return fmt.Errorf("JOB_CAPACITY must be at least 1, got %d", c.Jobs.Capacity)
	}

	if c.Download.Dir == "" {
		return fmt.Errorf("DOWNLOAD_DIR must not be empty")
	}

	if !isHTTPURL(c.Google.BaseURL) {
		return fmt.Errorf("GOOGLE_SPEECH_BASE_URL must start with http:// or https://, got %q", c.Google.BaseURL)
	}
	if !isHTTPURL(c.Summarizer.OllamaBaseURL) {
		return fmt.Errorf("OLLAMA_BASE_URL must start with http:// or https://, got %q", c.Summarizer.OllamaBaseURL)
	}
	if c.Summarizer.MaxPromptRunes < 1 {
		return fmt.Errorf("SUMMARIZE_MAX_PROMPT_RUNES must be at least 1, got %d", c.Summarizer.MaxPromptRunes)
	}

	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
