package cognitive

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/config"
)

// Answer is one candidate from the knowledge base. Confidence is in [0, 1].
type Answer struct {
	Answer     string
	Confidence float64
}

// QnA answers free-form questions. An empty slice means no match.
type QnA interface {
	Answers(ctx context.Context, question string) ([]Answer, error)
}

// QnAMakerClient queries a QnA Maker knowledge base.
type QnAMakerClient struct {
	kbID      string
	key       string
	host      string
	top       int
	threshold float64
	client    *http.Client
	logger    *zap.Logger
}

func NewQnAMakerClient(cfg config.QnAConfig, logger *zap.Logger) *QnAMakerClient {
	top := cfg.Top
	if top <= 0 {
		top = 1
	}
	return &QnAMakerClient{
		kbID:      cfg.KnowledgeBaseID,
		key:       cfg.EndpointKey,
		host:      strings.TrimSuffix(cfg.Host, "/"),
		top:       top,
		threshold: cfg.ScoreThreshold,
		client:    newHTTPClient(),
		logger:    logger.Named("qna"),
	}
}

func (c *QnAMakerClient) IsConfigured() bool {
	return c.kbID != "" && c.key != "" && c.host != ""
}

type generateAnswerRequest struct {
	Question string `json:"question"`
	Top      int    `json:"top"`
}

type generateAnswerResponse struct {
	Answers []struct {
		Answer string  `json:"answer"`
		Score  float64 `json:"score"`
		ID     int     `json:"id"`
	} `json:"answers"`
}

func (c *QnAMakerClient) Answers(ctx context.Context, question string) ([]Answer, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(question) == "" {
		return []Answer{}, nil
	}

	u := fmt.Sprintf("%s/knowledgebases/%s/generateAnswer", c.host, c.kbID)
	headers := map[string]string{"Authorization": "EndpointKey " + c.key}

	var res generateAnswerResponse
	if err := doJSON(ctx, c.client, "qnamaker", http.MethodPost, u, headers,
		generateAnswerRequest{Question: question, Top: c.top}, &res); err != nil {
		return nil, err
	}

	// The service scores 0-100 and answers "no match" with a zero score.
	answers := make([]Answer, 0, len(res.Answers))
	for _, a := range res.Answers {
		confidence := a.Score / 100
		if confidence < c.threshold || a.Score == 0 {
			continue
		}
		answers = append(answers, Answer{Answer: a.Answer, Confidence: confidence})
	}
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].Confidence > answers[j].Confidence
	})

	c.logger.Debug("knowledge base queried",
		zap.Int("candidates", len(res.Answers)),
		zap.Int("accepted", len(answers)),
	)
	return answers, nil
}
