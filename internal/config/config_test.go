package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDialogConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadDialogConfig()
		assert.Equal(t, DefaultDialogConfig(), cfg)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DIALOG_MAX_AMOUNT", "250")
		t.Setenv("DIALOG_SURVEY_EVERY", "5")
		t.Setenv("DIALOG_SESSION_TTL", "90m")

		cfg := LoadDialogConfig()
		assert.Equal(t, 250, cfg.MaxAmount)
		assert.Equal(t, 5, cfg.SurveyEvery)
		assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	})

	t.Run("malformed values fall back", func(t *testing.T) {
		t.Setenv("DIALOG_MAX_RATING", "five")
		t.Setenv("DIALOG_SESSION_TTL", "forever")

		cfg := LoadDialogConfig()
		assert.Equal(t, 5, cfg.MaxRating)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	})
}

func TestServiceConfigured(t *testing.T) {
	assert.False(t, LUISConfig{AppID: "app", APIKey: "key"}.Configured())
	assert.True(t, LUISConfig{AppID: "app", APIKey: "key", HostName: "westus"}.Configured())
	assert.False(t, QnAConfig{KnowledgeBaseID: "kb"}.Configured())
	assert.True(t, TextAnalyticsConfig{Endpoint: "https://x", Key: "k"}.Configured())
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("LuisAppId", "app-id")
	t.Setenv("STORAGE_DRIVER", "bolt")

	cfg := Load()
	assert.Equal(t, "8088", cfg.Port)
	assert.Equal(t, "app-id", cfg.LUIS.AppID)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, 0.3, cfg.QnA.ScoreThreshold)
	assert.Equal(t, 1, cfg.QnA.Top)
	assert.Equal(t, []string{"http://localhost:3978"}, cfg.CORSOrigins)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bank.example, https://chat.bank.example,")

	cfg := Load()
	assert.Equal(t, []string{"https://bank.example", "https://chat.bank.example"}, cfg.CORSOrigins)
}
