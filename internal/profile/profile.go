package profile

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string
	// InstanceURL is the public url of this calevents instance.
	// Used to build absolute .ics links; relative links are emitted when empty.
	InstanceURL string

	// LLM Configuration
	LLMProvider string        // CALEVENTS_LLM_PROVIDER (gemini|openai|compatible, default: gemini)
	LLMAPIKey   string        // CALEVENTS_LLM_API_KEY (legacy: GEMINI_API_KEY)
	LLMModel    string        // CALEVENTS_LLM_MODEL (default: gemini-2.0-flash)
	LLMBaseURL  string        // CALEVENTS_LLM_BASE_URL (provider-specific default)
	LLMTimeout  time.Duration // CALEVENTS_LLM_TIMEOUT (default: 30s)

	// DefaultTimezone is the fallback IANA timezone when a request supplies none.
	DefaultTimezone string // CALEVENTS_DEFAULT_TIMEZONE (legacy: LOCAL_TIMEZONE, default: Asia/Kolkata)

	// File Extraction Configuration
	OCREnabled         bool   // CALEVENTS_OCR_ENABLED (default: false)
	TextExtractEnabled bool   // CALEVENTS_TEXTEXTRACT_ENABLED (default: false)
	TesseractPath      string // CALEVENTS_OCR_TESSERACT_PATH (default: tesseract)
	TessdataPath       string // CALEVENTS_OCR_TESSDATA_PATH (default: "")
	OCRLanguages       string // CALEVENTS_OCR_LANGUAGES (default: eng)
	TikaServerURL      string // CALEVENTS_TEXTEXTRACT_TIKA_URL (default: http://localhost:9998)

	// RateLimitRPS is the per-client request budget per second. 0 disables limiting.
	RateLimitRPS int // CALEVENTS_RATE_LIMIT_RPS (default: 10)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLLMConfigured returns true if an extraction provider can be constructed.
func (p *Profile) IsLLMConfigured() bool {
	return p.LLMAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
// Supports both CALEVENTS_* (new) and the legacy GEMINI_*/LOCAL_TIMEZONE names.
func (p *Profile) FromEnv() {
	getIntEnv := func(key string, defaultValue int) int {
		if val := os.Getenv(key); val != "" {
			if n, err := strconv.Atoi(val); err == nil {
				return n
			}
		}
		return defaultValue
	}
	getBoolEnv := func(key string) bool {
		val := os.Getenv(key)
		return val == "true" || val == "1"
	}

	p.Mode = getEnvOrDefault("CALEVENTS_MODE", "dev")
	p.Addr = os.Getenv("CALEVENTS_ADDR")
	p.Port = getIntEnv("CALEVENTS_PORT", 8081)
	p.InstanceURL = os.Getenv("CALEVENTS_INSTANCE_URL")

	p.LLMProvider = getEnvOrDefault("CALEVENTS_LLM_PROVIDER", "gemini")
	p.LLMAPIKey = getEnvOrDefault("CALEVENTS_LLM_API_KEY", os.Getenv("GEMINI_API_KEY"))
	p.LLMModel = getEnvOrDefault("CALEVENTS_LLM_MODEL", getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"))
	p.LLMBaseURL = os.Getenv("CALEVENTS_LLM_BASE_URL")
	p.LLMTimeout = 30 * time.Second
	if val := os.Getenv("CALEVENTS_LLM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			p.LLMTimeout = d
		}
	}

	p.DefaultTimezone = getEnvOrDefault("CALEVENTS_DEFAULT_TIMEZONE", getEnvOrDefault("LOCAL_TIMEZONE", "Asia/Kolkata"))

	p.OCREnabled = getBoolEnv("CALEVENTS_OCR_ENABLED")
	p.TextExtractEnabled = getBoolEnv("CALEVENTS_TEXTEXTRACT_ENABLED")
	p.TesseractPath = getEnvOrDefault("CALEVENTS_OCR_TESSERACT_PATH", "tesseract")
	p.TessdataPath = os.Getenv("CALEVENTS_OCR_TESSDATA_PATH")
	p.OCRLanguages = getEnvOrDefault("CALEVENTS_OCR_LANGUAGES", "eng")
	p.TikaServerURL = getEnvOrDefault("CALEVENTS_TEXTEXTRACT_TIKA_URL", "http://localhost:9998")

	p.RateLimitRPS = getIntEnv("CALEVENTS_RATE_LIMIT_RPS", 10)
}

// Validate normalizes and checks the profile. A missing LLM credential is
// not a startup error; it surfaces as a configuration error on each
// extraction request instead.
func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port: %d", p.Port)
	}

	switch p.LLMProvider {
	case "gemini", "openai", "compatible":
	default:
		return errors.Errorf("unsupported LLM provider: %s", p.LLMProvider)
	}

	if p.LLMProvider == "compatible" && p.LLMBaseURL == "" {
		return errors.New("CALEVENTS_LLM_BASE_URL is required for the compatible provider")
	}

	if p.LLMTimeout <= 0 {
		p.LLMTimeout = 30 * time.Second
	}

	if _, err := time.LoadLocation(p.DefaultTimezone); err != nil {
		return errors.Wrapf(err, "invalid default timezone %q", p.DefaultTimezone)
	}

	return nil
}

// ListenAddr returns the address the HTTP server binds to.
func (p *Profile) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}
