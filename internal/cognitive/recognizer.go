package cognitive

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/config"
)

// TopIntent is the closed set of dispatch intents the assistant handles.
type TopIntent int

const (
	IntentUnrecognized TopIntent = iota
	IntentBanking
	IntentQnA
)

func (i TopIntent) String() string {
	switch i {
	case IntentBanking:
		return "banking"
	case IntentQnA:
		return "qna"
	default:
		return "unrecognized"
	}
}

// BankingIntent is the action requested inside the banking intent.
type BankingIntent int

const (
	BankingNone BankingIntent = iota
	BankingMakeTransaction
	BankingViewAccount
	BankingViewTransactions
)

func (i BankingIntent) String() string {
	switch i {
	case BankingMakeTransaction:
		return "make transaction"
	case BankingViewAccount:
		return "view account"
	case BankingViewTransactions:
		return "view transactions"
	default:
		return "none"
	}
}

// Dispatch and banking app labels as published in the LUIS models.
const (
	labelBanking          = "l_Banking"
	labelQnA              = "q_banking-qna"
	labelMakeTransaction  = "Make transaction"
	labelViewAccount      = "View account"
	labelViewTransactions = "View transactions"
)

// Entity types the dialogs look for.
const (
	EntityNumber     = "builtin.number"
	EntityHistorical = "historical"
)

type Entity struct {
	Type  string
	Value string
}

// Recognition is the classified utterance. Label keeps the raw dispatch label
// so unrecognized intents can be reported verbatim.
type Recognition struct {
	Intent   TopIntent
	Label    string
	Banking  BankingIntent
	Entities []Entity
}

// FirstEntity returns the value of the first entity of the given type.
func (r Recognition) FirstEntity(entityType string) (string, bool) {
	for _, e := range r.Entities {
		if e.Type == entityType {
			return e.Value, true
		}
	}
	return "", false
}

func (r Recognition) HasEntity(entityType string) bool {
	_, ok := r.FirstEntity(entityType)
	return ok
}

// Recognizer classifies utterances. IsConfigured false means classification
// must be skipped entirely.
type Recognizer interface {
	IsConfigured() bool
	Recognize(ctx context.Context, utterance string) (Recognition, error)
}

// LUISRecognizer calls a LUIS v2 dispatch application.
type LUISRecognizer struct {
	appID    string
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewLUISRecognizer(cfg config.LUISConfig, logger *zap.Logger) *LUISRecognizer {
	endpoint := ""
	if cfg.HostName != "" {
		endpoint = fmt.Sprintf("https://%s.api.cognitive.microsoft.com", cfg.HostName)
	}
	return &LUISRecognizer{
		appID:    cfg.AppID,
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   newHTTPClient(),
		logger:   logger.Named("luis"),
	}
}

// WithEndpoint overrides the service root, used against local fakes.
func (r *LUISRecognizer) WithEndpoint(endpoint string) *LUISRecognizer {
	r.endpoint = strings.TrimSuffix(endpoint, "/")
	return r
}

func (r *LUISRecognizer) IsConfigured() bool {
	return r.appID != "" && r.apiKey != "" && r.endpoint != ""
}

type luisIntent struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

type luisEntity struct {
	Entity     string `json:"entity"`
	Type       string `json:"type"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}

type luisResult struct {
	Query                  string       `json:"query"`
	TopScoringIntent       luisIntent   `json:"topScoringIntent"`
	Entities               []luisEntity `json:"entities"`
	ConnectedServiceResult *luisResult  `json:"connectedServiceResult,omitempty"`
}

func (r *LUISRecognizer) Recognize(ctx context.Context, utterance string) (Recognition, error) {
	if !r.IsConfigured() {
		return Recognition{}, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("q", utterance)
	q.Set("verbose", "true")
	u := fmt.Sprintf("%s/luis/v2.0/apps/%s?%s", r.endpoint, url.PathEscape(r.appID), q.Encode())
	headers := map[string]string{"Ocp-Apim-Subscription-Key": r.apiKey}

	var res luisResult
	if err := doJSON(ctx, r.client, "luis", http.MethodGet, u, headers, nil, &res); err != nil {
		return Recognition{}, err
	}

	rec := toRecognition(res)
	r.logger.Debug("utterance recognized",
		zap.String("label", rec.Label),
		zap.Float64("score", res.TopScoringIntent.Score),
		zap.Stringer("banking", rec.Banking),
		zap.Int("entities", len(rec.Entities)),
	)
	return rec, nil
}

func toRecognition(res luisResult) Recognition {
	rec := Recognition{Label: res.TopScoringIntent.Intent}

	switch rec.Label {
	case labelBanking:
		rec.Intent = IntentBanking
	case labelQnA:
		rec.Intent = IntentQnA
		return rec
	default:
		rec.Intent = IntentUnrecognized
		return rec
	}

	// The dispatched banking app carries the action and its entities.
	inner := res.ConnectedServiceResult
	if inner == nil {
		return rec
	}
	switch inner.TopScoringIntent.Intent {
	case labelMakeTransaction:
		rec.Banking = BankingMakeTransaction
	case labelViewAccount:
		rec.Banking = BankingViewAccount
	case labelViewTransactions:
		rec.Banking = BankingViewTransactions
	}
	for _, e := range inner.Entities {
		rec.Entities = append(rec.Entities, Entity{Type: e.Type, Value: e.Entity})
	}
	return rec
}
