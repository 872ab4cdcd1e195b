package cognitive

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ruralpay/assistant/internal/config"
)

const sentimentInstruction = "Classify the sentiment of the customer comment. " +
	"Answer with exactly one word: positive, neutral, negative or mixed."

// GeminiSentimentAnalyzer classifies sentiment with a Gemini model.
type GeminiSentimentAnalyzer struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiSentimentAnalyzer(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*GeminiSentimentAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiSentimentAnalyzer{
		client: client,
		model:  model,
		logger: logger.Named("gemini"),
	}, nil
}

func (g *GeminiSentimentAnalyzer) Analyze(ctx context.Context, text string) (Sentiment, error) {
	temperature := float32(0)
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(text),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(sentimentInstruction, genai.RoleUser),
			Temperature:       &temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI sentiment failed: %w", err)
	}

	sentiment, err := ParseSentiment(result.Text())
	if err != nil {
		return "", err
	}
	g.logger.Debug("sentiment analyzed", zap.String("sentiment", string(sentiment)))
	return sentiment, nil
}
