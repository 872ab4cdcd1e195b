package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/activity"
	"github.com/ruralpay/assistant/internal/bot"
	"github.com/ruralpay/assistant/internal/validation"
)

const maxActivityBytes = 1 << 20

// TurnProcessor runs one conversational turn.
type TurnProcessor interface {
	ProcessActivity(ctx context.Context, in activity.Activity) ([]activity.Activity, error)
}

// MessagesResponse carries the replies of one turn (expect-replies delivery).
type MessagesResponse struct {
	Activities []activity.Activity `json:"activities"`
}

type MessagingService struct {
	bot    TurnProcessor
	logger *zap.Logger
}

func NewMessagingService(b TurnProcessor, logger *zap.Logger) *MessagingService {
	return &MessagingService{bot: b, logger: logger.Named("messaging")}
}

// ProcessMessage runs one conversational turn
// @Summary Send an activity
// @Description Runs one turn for the activity's conversation and returns the bot's replies
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activity body activity.Activity true "Inbound activity"
// @Success 200 {object} MessagesResponse
// @Failure 400 {object} validation.ErrorResponse
// @Failure 401 {object} validation.ErrorResponse
// @Failure 500 {object} validation.ErrorResponse
// @Router /messages [post]
func (s *MessagingService) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxActivityBytes)

	var in activity.Activity
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		validation.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	out, err := s.bot.ProcessActivity(r.Context(), in)
	if err != nil {
		writeTurnError(w, s.logger, in.Conversation.ID, err)
		return
	}

	writeJSON(w, http.StatusOK, MessagesResponse{Activities: nonNil(out)})
}

func writeTurnError(w http.ResponseWriter, logger *zap.Logger, conversationID string, err error) {
	if errors.Is(err, bot.ErrInvalidActivity) {
		validation.SendErrorResponse(w, "Invalid activity", http.StatusBadRequest, err)
		return
	}
	logger.Error("turn failed", zap.String("conversation_id", conversationID), zap.Error(err))
	validation.SendErrorResponse(w, "Failed to process activity", http.StatusInternalServerError, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func nonNil(acts []activity.Activity) []activity.Activity {
	if acts == nil {
		return []activity.Activity{}
	}
	return acts
}
