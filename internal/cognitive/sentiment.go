package cognitive

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/config"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
)

// ParseSentiment accepts the four labels in any case, ignoring surrounding
// quotes, markdown emphasis and punctuation.
func ParseSentiment(s string) (Sentiment, error) {
	label := strings.Trim(strings.TrimSpace(s), ".,;:!?\"'`*_ \t\r\n")
	switch v := Sentiment(strings.ToLower(label)); v {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentMixed:
		return v, nil
	default:
		return "", fmt.Errorf("unknown sentiment %q", s)
	}
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (Sentiment, error)
}

// NewSentimentAnalyzer prefers Azure Text Analytics, then Gemini.
func NewSentimentAnalyzer(ctx context.Context, ta config.TextAnalyticsConfig, gemini config.GeminiConfig, logger *zap.Logger) (SentimentAnalyzer, error) {
	if ta.Configured() {
		return NewTextAnalyticsClient(ta, logger), nil
	}
	if gemini.APIKey != "" {
		return NewGeminiSentimentAnalyzer(ctx, gemini, logger)
	}
	logger.Warn("no sentiment service configured")
	return unconfiguredAnalyzer{}, nil
}

type unconfiguredAnalyzer struct{}

func (unconfiguredAnalyzer) Analyze(context.Context, string) (Sentiment, error) {
	return "", ErrNotConfigured
}

// TextAnalyticsClient calls the Azure Text Analytics v3.0 sentiment API.
type TextAnalyticsClient struct {
	endpoint string
	key      string
	language string
	client   *http.Client
	logger   *zap.Logger
}

func NewTextAnalyticsClient(cfg config.TextAnalyticsConfig, logger *zap.Logger) *TextAnalyticsClient {
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}
	return &TextAnalyticsClient{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		key:      cfg.Key,
		language: lang,
		client:   newHTTPClient(),
		logger:   logger.Named("textanalytics"),
	}
}

type sentimentDocument struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

type sentimentRequest struct {
	Documents []sentimentDocument `json:"documents"`
}

type sentimentResponse struct {
	Documents []struct {
		ID        string `json:"id"`
		Sentiment string `json:"sentiment"`
	} `json:"documents"`
	Errors []struct {
		ID    string `json:"id"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"errors"`
}

func (c *TextAnalyticsClient) Analyze(ctx context.Context, text string) (Sentiment, error) {
	u := c.endpoint + "/text/analytics/v3.0/sentiment"
	headers := map[string]string{"Ocp-Apim-Subscription-Key": c.key}
	req := sentimentRequest{Documents: []sentimentDocument{{ID: "0", Language: c.language, Text: text}}}

	var res sentimentResponse
	if err := doJSON(ctx, c.client, "textanalytics", http.MethodPost, u, headers, req, &res); err != nil {
		return "", err
	}
	if len(res.Errors) > 0 {
		return "", fmt.Errorf("textanalytics document error %s: %s", res.Errors[0].Error.Code, res.Errors[0].Error.Message)
	}
	if len(res.Documents) == 0 {
		return "", fmt.Errorf("textanalytics returned no documents")
	}

	sentiment, err := ParseSentiment(res.Documents[0].Sentiment)
	if err != nil {
		return "", err
	}
	c.logger.Debug("sentiment analyzed", zap.String("sentiment", string(sentiment)))
	return sentiment, nil
}
