package config

import (
	"os"
	"strconv"
	"time"
)

// DialogConfig holds the validation ranges and cadences of the conversation flows.
type DialogConfig struct {
	MinAmount     int
	MaxAmount     int
	MinRating     int
	MaxRating     int
	SurveyEvery   int
	UpsellAfter   int
	SessionTTL    time.Duration
	LoginURL      string
	CardImageBase string
}

func LoadDialogConfig() *DialogConfig {
	return &DialogConfig{
		MinAmount:     getEnvAsInt("DIALOG_MIN_AMOUNT", 0),
		MaxAmount:     getEnvAsInt("DIALOG_MAX_AMOUNT", 100),
		MinRating:     getEnvAsInt("DIALOG_MIN_RATING", 0),
		MaxRating:     getEnvAsInt("DIALOG_MAX_RATING", 5),
		SurveyEvery:   getEnvAsInt("DIALOG_SURVEY_EVERY", 3),
		UpsellAfter:   getEnvAsInt("DIALOG_UPSELL_AFTER", 3),
		SessionTTL:    getEnvAsDuration("DIALOG_SESSION_TTL", 24*time.Hour),
		LoginURL:      getEnv("DIALOG_LOGIN_URL", "https://online.ruralpay.example/login"),
		CardImageBase: getEnv("DIALOG_CARD_IMAGE_BASE", "http://localhost:3978/static"),
	}
}

// DefaultDialogConfig returns the built-in values without reading the environment.
func DefaultDialogConfig() *DialogConfig {
	return &DialogConfig{
		MinAmount:     0,
		MaxAmount:     100,
		MinRating:     0,
		MaxRating:     5,
		SurveyEvery:   3,
		UpsellAfter:   3,
		SessionTTL:    24 * time.Hour,
		LoginURL:      "https://online.ruralpay.example/login",
		CardImageBase: "http://localhost:3978/static",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
