package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the process configuration read from .env and the environment.
type Config struct {
	Port      string
	PublicURL string
	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string
	LogLevel    string
	Env         string

	AppID       string
	AppPassword string

	LUIS          LUISConfig
	QnA           QnAConfig
	TextAnalytics TextAnalyticsConfig
	Gemini        GeminiConfig

	SpeechEnabled bool

	Storage  StorageConfig
	Telegram TelegramConfig
}

type LUISConfig struct {
	AppID    string
	APIKey   string
	HostName string
}

// Configured mirrors the recognizer's "all three settings present" rule.
func (c LUISConfig) Configured() bool {
	return c.AppID != "" && c.APIKey != "" && c.HostName != ""
}

type QnAConfig struct {
	KnowledgeBaseID string
	EndpointKey     string
	Host            string
	ScoreThreshold  float64
	Top             int
}

func (c QnAConfig) Configured() bool {
	return c.KnowledgeBaseID != "" && c.EndpointKey != "" && c.Host != ""
}

type TextAnalyticsConfig struct {
	Endpoint string
	Key      string
	Language string
}

func (c TextAnalyticsConfig) Configured() bool {
	return c.Endpoint != "" && c.Key != ""
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type StorageConfig struct {
	Driver   string
	BoltPath string
}

type TelegramConfig struct {
	Token string
	Debug bool
}

// Load binds the environment keys and returns the resolved configuration.
func Load() *Config {
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env
	_ = viper.ReadInConfig()    // the file is optional

	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("server.public_url", "PUBLIC_URL")
	viper.BindEnv("server.cors_origins", "CORS_ALLOWED_ORIGINS")
	viper.BindEnv("log.level", "LOG_LEVEL")
	viper.BindEnv("env", "APP_ENV")

	viper.BindEnv("bot.app_id", "MicrosoftAppId")
	viper.BindEnv("bot.app_password", "MicrosoftAppPassword")

	viper.BindEnv("luis.app_id", "LuisAppId")
	viper.BindEnv("luis.api_key", "LuisAPIKey")
	viper.BindEnv("luis.host_name", "LuisAPIHostName")

	viper.BindEnv("qna.knowledge_base_id", "QnAKnowledgebaseId")
	viper.BindEnv("qna.endpoint_key", "QnAEndpointKey")
	viper.BindEnv("qna.host", "QnAEndpointHostName")
	viper.BindEnv("qna.score_threshold", "QNA_SCORE_THRESHOLD")
	viper.BindEnv("qna.top", "QNA_TOP")

	viper.BindEnv("text_analytics.endpoint", "COG_Endpoint")
	viper.BindEnv("text_analytics.key", "COG_SUB_KEY")
	viper.BindEnv("text_analytics.language", "COG_LANGUAGE")

	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")

	viper.BindEnv("speech.enabled", "SPEECH_ENABLED")

	viper.BindEnv("storage.driver", "STORAGE_DRIVER")
	viper.BindEnv("storage.bolt_path", "BOLT_PATH")

	viper.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	viper.BindEnv("telegram.debug", "TELEGRAM_DEBUG")

	viper.SetDefault("server.port", "3978")
	viper.SetDefault("server.public_url", "http://localhost:3978")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("env", "development")
	viper.SetDefault("qna.score_threshold", 0.3)
	viper.SetDefault("qna.top", 1)
	viper.SetDefault("text_analytics.language", "en")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("speech.enabled", false)
	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("storage.bolt_path", "sessions.db")

	publicURL := viper.GetString("server.public_url")
	origins := splitList(viper.GetString("server.cors_origins"))
	if len(origins) == 0 {
		origins = []string{publicURL}
	}

	return &Config{
		Port:        viper.GetString("server.port"),
		PublicURL:   publicURL,
		CORSOrigins: origins,
		LogLevel:    viper.GetString("log.level"),
		Env:         viper.GetString("env"),
		AppID:       viper.GetString("bot.app_id"),
		AppPassword: viper.GetString("bot.app_password"),
		LUIS: LUISConfig{
			AppID:    viper.GetString("luis.app_id"),
			APIKey:   viper.GetString("luis.api_key"),
			HostName: viper.GetString("luis.host_name"),
		},
		QnA: QnAConfig{
			KnowledgeBaseID: viper.GetString("qna.knowledge_base_id"),
			EndpointKey:     viper.GetString("qna.endpoint_key"),
			Host:            viper.GetString("qna.host"),
			ScoreThreshold:  viper.GetFloat64("qna.score_threshold"),
			Top:             viper.GetInt("qna.top"),
		},
		TextAnalytics: TextAnalyticsConfig{
			Endpoint: viper.GetString("text_analytics.endpoint"),
			Key:      viper.GetString("text_analytics.key"),
			Language: viper.GetString("text_analytics.language"),
		},
		Gemini: GeminiConfig{
			APIKey: viper.GetString("gemini.api_key"),
			Model:  viper.GetString("gemini.model"),
		},
		SpeechEnabled: viper.GetBool("speech.enabled"),
		Storage: StorageConfig{
			Driver:   viper.GetString("storage.driver"),
			BoltPath: viper.GetString("storage.bolt_path"),
		},
		Telegram: TelegramConfig{
			Token: viper.GetString("telegram.token"),
			Debug: viper.GetBool("telegram.debug"),
		},
	}
}

// splitList parses a comma-separated env value.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
