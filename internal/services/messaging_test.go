package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/activity"
	"github.com/ruralpay/assistant/internal/bot"
	"github.com/ruralpay/assistant/internal/validation"
)

func newMessagingRouter(p TurnProcessor) http.Handler {
	service := NewMessagingService(p, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/messages", service.ProcessMessage)
	return r
}

func TestMessagingService_ProcessMessage(t *testing.T) {
	body := `{"type":"message","id":"a1","text":"hi","conversation":{"id":"conv-1"},"from":{"id":"u1"},"recipient":{"id":"bot"},"locale":"en-US"}`

	t.Run("replies", func(t *testing.T) {
		p := &MockTurnProcessor{}
		p.On("ProcessActivity", mock.Anything, mock.MatchedBy(func(a activity.Activity) bool {
			return a.Text == "hi" && a.Conversation.ID == "conv-1"
		})).Return([]activity.Activity{activity.Text("How can I help?", activity.InputHintExpecting)}, nil)

		w := httptest.NewRecorder()
		newMessagingRouter(p).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp MessagesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Activities, 1)
		assert.Equal(t, "How can I help?", resp.Activities[0].Text)
		p.AssertExpectations(t)
	})

	t.Run("no replies encode as empty list", func(t *testing.T) {
		p := &MockTurnProcessor{}
		p.On("ProcessActivity", mock.Anything, mock.Anything).Return(nil, nil)

		w := httptest.NewRecorder()
		newMessagingRouter(p).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"activities":[]}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		p := &MockTurnProcessor{}
		w := httptest.NewRecorder()
		newMessagingRouter(p).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString("{")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		p.AssertNotCalled(t, "ProcessActivity", mock.Anything, mock.Anything)
	})

	t.Run("invalid activity", func(t *testing.T) {
		validationErr := validation.NewValidationHelper().ValidateStruct(&activity.Activity{Type: activity.TypeMessage})
		p := &MockTurnProcessor{}
		p.On("ProcessActivity", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: %w", bot.ErrInvalidActivity, validationErr))

		w := httptest.NewRecorder()
		newMessagingRouter(p).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp validation.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid activity", resp.Error)
		assert.Contains(t, resp.Details, "ID")
	})

	t.Run("storage failure", func(t *testing.T) {
		p := &MockTurnProcessor{}
		p.On("ProcessActivity", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

		w := httptest.NewRecorder()
		newMessagingRouter(p).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "redis down")
	})
}
