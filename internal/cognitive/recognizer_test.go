package cognitive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/config"
)

func newLUIS(t *testing.T, handler http.HandlerFunc) *LUISRecognizer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.LUISConfig{AppID: "dispatch-app", APIKey: "luis-key", HostName: "westus"}
	return NewLUISRecognizer(cfg, zap.NewNop()).WithEndpoint(srv.URL)
}

func TestLUISRecognizer_Recognize(t *testing.T) {
	t.Run("banking intent with entities", func(t *testing.T) {
		r := newLUIS(t, func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "/luis/v2.0/apps/dispatch-app", req.URL.Path)
			assert.Equal(t, "send 50 dollars", req.URL.Query().Get("q"))
			assert.Equal(t, "luis-key", req.Header.Get("Ocp-Apim-Subscription-Key"))
			assert.Empty(t, req.URL.Query().Get("subscription-key"))
			w.Write([]byte(`{
				"query": "send 50 dollars",
				"topScoringIntent": {"intent": "l_Banking", "score": 0.93},
				"entities": [],
				"connectedServiceResult": {
					"query": "send 50 dollars",
					"topScoringIntent": {"intent": "Make transaction", "score": 0.88},
					"entities": [{"entity": "50", "type": "builtin.number", "startIndex": 5, "endIndex": 6}]
				}
			}`))
		})

		rec, err := r.Recognize(context.Background(), "send 50 dollars")
		require.NoError(t, err)
		assert.Equal(t, IntentBanking, rec.Intent)
		assert.Equal(t, BankingMakeTransaction, rec.Banking)
		value, ok := rec.FirstEntity(EntityNumber)
		assert.True(t, ok)
		assert.Equal(t, "50", value)
		assert.False(t, rec.HasEntity(EntityHistorical))
	})

	t.Run("qna intent", func(t *testing.T) {
		r := newLUIS(t, func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"topScoringIntent": {"intent": "q_banking-qna", "score": 0.7}}`))
		})

		rec, err := r.Recognize(context.Background(), "what are your opening hours")
		require.NoError(t, err)
		assert.Equal(t, IntentQnA, rec.Intent)
		assert.Equal(t, BankingNone, rec.Banking)
	})

	t.Run("unknown dispatch label", func(t *testing.T) {
		r := newLUIS(t, func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"topScoringIntent": {"intent": "None", "score": 0.4}}`))
		})

		rec, err := r.Recognize(context.Background(), "blah")
		require.NoError(t, err)
		assert.Equal(t, IntentUnrecognized, rec.Intent)
		assert.Equal(t, "None", rec.Label)
	})

	t.Run("service error", func(t *testing.T) {
		r := newLUIS(t, func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "bad key"}`))
		})

		_, err := r.Recognize(context.Background(), "hi")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	})
}

func TestLUISRecognizer_IsConfigured(t *testing.T) {
	r := NewLUISRecognizer(config.LUISConfig{AppID: "app", APIKey: "key"}, zap.NewNop())
	assert.False(t, r.IsConfigured())

	_, err := r.Recognize(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
