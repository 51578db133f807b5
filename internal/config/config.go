package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything the pipeline needs. It is built once in main and
// passed by reference; components never reach into the environment themselves.
type Config struct {
	// Transcription service
	TranscribeURL  string
	MockTranscribe bool

	// LLM gateway (OpenAI-compatible chat completions)
	LLMGatewayURL string
	LLMAPIKey     string
	LLMModel      string
	MockLLM       bool

	// Google Calendar sink
	CalendarWrite    bool
	CredentialsFile  string
	TokenFile        string
	CalendarID       string
	Timezone         string
	ListUpcomingMax  int64
	DefaultEventSpan time.Duration

	// Interactive back-fill of missing fields
	Interactive    bool
	EnhanceReplies bool

	// Optional xlsx manifest of audio references
	ManifestPath string

	HTTPTimeout time.Duration
}

// FromEnv builds the Config from environment variables. godotenv runs before
// this in main, so a .env file works the same as real environment.
func FromEnv() *Config {
	cfg := &Config{
		TranscribeURL:    os.Getenv("TRANSCRIBE_URL"),
		MockTranscribe:   boolEnv("USE_MOCK_TRANSCRIBE"),
		LLMGatewayURL:    os.Getenv("LLM_GATEWAY_URL"),
		LLMAPIKey:        os.Getenv("LLM_API_KEY"),
		LLMModel:         os.Getenv("LLM_MODEL"),
		MockLLM:          boolEnv("USE_MOCK_LLM"),
		CalendarWrite:    boolEnv("CALENDAR_WRITE"),
		CredentialsFile:  envOr("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		TokenFile:        envOr("GOOGLE_TOKEN_FILE", "token.json"),
		CalendarID:       envOr("CALENDAR_ID", "primary"),
		Timezone:         envOr("CALENDAR_TIMEZONE", "UTC"),
		ListUpcomingMax:  int64(intEnv("LIST_UPCOMING_MAX", 5)),
		DefaultEventSpan: time.Hour,
		Interactive:      boolEnv("INTERACTIVE"),
		EnhanceReplies:   boolEnv("ENHANCE_REPLIES"),
		ManifestPath:     os.Getenv("MANIFEST_PATH"),
		HTTPTimeout:      12 * time.Second,
	}
	return cfg
}

// Validate fails fast on settings the selected modes cannot run without.
func (c *Config) Validate() error {
	if !c.MockTranscribe && c.TranscribeURL == "" {
		return fmt.Errorf("TRANSCRIBE_URL not set")
	}
	if !c.MockLLM && (c.LLMGatewayURL == "" || c.LLMAPIKey == "") {
		return fmt.Errorf("llm gateway not configured: need LLM_GATEWAY_URL and LLM_API_KEY")
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string) bool {
	return os.Getenv(k) == "true"
}

func intEnv(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
