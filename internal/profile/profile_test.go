package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CALEVENTS_MODE", "CALEVENTS_ADDR", "CALEVENTS_PORT", "CALEVENTS_INSTANCE_URL",
		"CALEVENTS_LLM_PROVIDER", "CALEVENTS_LLM_API_KEY", "CALEVENTS_LLM_MODEL",
		"CALEVENTS_LLM_BASE_URL", "CALEVENTS_LLM_TIMEOUT",
		"CALEVENTS_DEFAULT_TIMEZONE", "CALEVENTS_RATE_LIMIT_RPS",
		"CALEVENTS_OCR_ENABLED", "CALEVENTS_TEXTEXTRACT_ENABLED",
		"GEMINI_API_KEY", "GEMINI_MODEL", "LOCAL_TIMEZONE",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	var p Profile
	p.FromEnv()

	assert.Equal(t, "dev", p.Mode)
	assert.Equal(t, 8081, p.Port)
	assert.Equal(t, "gemini", p.LLMProvider)
	assert.Equal(t, "gemini-2.0-flash", p.LLMModel)
	assert.Equal(t, 30*time.Second, p.LLMTimeout)
	assert.Equal(t, "Asia/Kolkata", p.DefaultTimezone)
	assert.Equal(t, 10, p.RateLimitRPS)
	assert.False(t, p.OCREnabled)
	assert.False(t, p.TextExtractEnabled)
	assert.False(t, p.IsLLMConfigured())
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CALEVENTS_MODE", "prod")
	t.Setenv("CALEVENTS_PORT", "9090")
	t.Setenv("CALEVENTS_LLM_PROVIDER", "compatible")
	t.Setenv("CALEVENTS_LLM_API_KEY", "sk-test")
	t.Setenv("CALEVENTS_LLM_BASE_URL", "https://api.deepseek.com/v1")
	t.Setenv("CALEVENTS_LLM_TIMEOUT", "45s")
	t.Setenv("CALEVENTS_DEFAULT_TIMEZONE", "Europe/Berlin")
	t.Setenv("CALEVENTS_OCR_ENABLED", "true")
	t.Setenv("CALEVENTS_RATE_LIMIT_RPS", "5")

	var p Profile
	p.FromEnv()

	assert.Equal(t, "prod", p.Mode)
	assert.Equal(t, 9090, p.Port)
	assert.Equal(t, "compatible", p.LLMProvider)
	assert.Equal(t, "sk-test", p.LLMAPIKey)
	assert.Equal(t, 45*time.Second, p.LLMTimeout)
	assert.Equal(t, "Europe/Berlin", p.DefaultTimezone)
	assert.True(t, p.OCREnabled)
	assert.Equal(t, 5, p.RateLimitRPS)
	assert.True(t, p.IsLLMConfigured())
	assert.False(t, p.IsDev())
}

func TestFromEnvLegacyNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "legacy-key")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("LOCAL_TIMEZONE", "America/New_York")

	var p Profile
	p.FromEnv()

	assert.Equal(t, "legacy-key", p.LLMAPIKey)
	assert.Equal(t, "gemini-1.5-pro", p.LLMModel)
	assert.Equal(t, "America/New_York", p.DefaultTimezone)
}

func TestFromEnvNewNamesWinOverLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "legacy-key")
	t.Setenv("CALEVENTS_LLM_API_KEY", "new-key")

	var p Profile
	p.FromEnv()

	assert.Equal(t, "new-key", p.LLMAPIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Profile {
		return &Profile{
			Mode:            "dev",
			Port:            8081,
			LLMProvider:     "gemini",
			LLMTimeout:      30 * time.Second,
			DefaultTimezone: "Asia/Kolkata",
		}
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("unknown mode degrades to dev", func(t *testing.T) {
		p := valid()
		p.Mode = "staging"
		require.NoError(t, p.Validate())
		assert.Equal(t, "dev", p.Mode)
	})

	t.Run("bad port", func(t *testing.T) {
		p := valid()
		p.Port = -1
		assert.Error(t, p.Validate())
	})

	t.Run("bad provider", func(t *testing.T) {
		p := valid()
		p.LLMProvider = "bard"
		assert.Error(t, p.Validate())
	})

	t.Run("compatible requires base url", func(t *testing.T) {
		p := valid()
		p.LLMProvider = "compatible"
		assert.Error(t, p.Validate())

		p.LLMBaseURL = "https://api.deepseek.com/v1"
		assert.NoError(t, p.Validate())
	})

	t.Run("bad timezone", func(t *testing.T) {
		p := valid()
		p.DefaultTimezone = "Nope/Nope"
		assert.Error(t, p.Validate())
	})

	t.Run("zero timeout restored", func(t *testing.T) {
		p := valid()
		p.LLMTimeout = 0
		require.NoError(t, p.Validate())
		assert.Equal(t, 30*time.Second, p.LLMTimeout)
	})
}

func TestListenAddr(t *testing.T) {
	p := &Profile{Addr: "", Port: 8081}
	assert.Equal(t, ":8081", p.ListenAddr())

	p = &Profile{Addr: "127.0.0.1", Port: 9090}
	assert.Equal(t, "127.0.0.1:9090", p.ListenAddr())
}
