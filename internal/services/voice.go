package services

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/activity"
	mW "github.com/ruralpay/assistant/internal/middleware"
	"github.com/ruralpay/assistant/internal/speech"
	"github.com/ruralpay/assistant/internal/validation"
)

const (
	maxVoiceBytes  = 10 * 1024 * 1024
	voiceChannelID = "voice"
	voiceBotID     = "bot"
)

type VoiceMessageRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	UserID         string `json:"user_id"`
	Audio          string `json:"audio" validate:"required,base64"`
	Encoding       string `json:"encoding"`
	SampleRate     int    `json:"sample_rate" validate:"omitempty,gte=8000,lte=48000"`
	LanguageCode   string `json:"language_code"`
}

type VoiceMessageResponse struct {
	Transcript string              `json:"transcript"`
	Confidence float32             `json:"confidence"`
	Duration   float64             `json:"duration_seconds"`
	Activities []activity.Activity `json:"activities"`
}

// VoiceService transcribes a spoken message and runs it as a text turn.
type VoiceService struct {
	transcriber speech.Transcriber
	bot         TurnProcessor
	validator   *validation.ValidationHelper
	logger      *zap.Logger
}

func NewVoiceService(t speech.Transcriber, b TurnProcessor, logger *zap.Logger) *VoiceService {
	return &VoiceService{
		transcriber: t,
		bot:         b,
		validator:   validation.NewValidationHelper(),
		logger:      logger.Named("voice"),
	}
}

// ProcessVoiceMessage transcribes audio and runs it as a message
// @Summary Send a voice message
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VoiceMessageRequest true "Base64 audio"
// @Success 200 {object} VoiceMessageResponse
// @Failure 400 {object} validation.ErrorResponse
// @Failure 422 {object} validation.ErrorResponse
// @Failure 503 {object} validation.ErrorResponse
// @Router /voice/messages [post]
func (s *VoiceService) ProcessVoiceMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxVoiceBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req VoiceMessageRequest
	if err := dec.Decode(&req); err != nil {
		validation.SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		validation.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.ValidateStruct(&req); err != nil {
		validation.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil || len(audio) == 0 {
		validation.SendErrorResponse(w, "Audio must be non-empty base64", http.StatusBadRequest, nil)
		return
	}

	start := time.Now()
	result, err := s.transcriber.Transcribe(r.Context(), speech.Request{
		Audio:        audio,
		Encoding:     req.Encoding,
		SampleRate:   req.SampleRate,
		LanguageCode: req.LanguageCode,
	})
	duration := time.Since(start).Seconds()
	if errors.Is(err, speech.ErrNotConfigured) {
		validation.SendErrorResponse(w, "Voice input is not available", http.StatusServiceUnavailable, nil)
		return
	}
	if err != nil {
		s.logger.Warn("transcription failed", zap.String("conversation_id", req.ConversationID), zap.Error(err))
		validation.SendErrorResponse(w, "Failed to transcribe audio", http.StatusUnprocessableEntity, nil)
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = mW.CallerID(r.Context())
	}
	if userID == "" {
		userID = "voice-user"
	}

	s.logger.Info("transcription succeeded",
		zap.String("conversation_id", req.ConversationID),
		zap.Float32("confidence", result.Confidence),
	)

	in := activity.Activity{
		Type:         activity.TypeMessage,
		ChannelID:    voiceChannelID,
		Conversation: activity.ConversationAccount{ID: req.ConversationID},
		From:         activity.ChannelAccount{ID: userID},
		Recipient:    activity.ChannelAccount{ID: voiceBotID},
		Text:         result.Transcript,
	}
	out, err := s.bot.ProcessActivity(r.Context(), in)
	if err != nil {
		writeTurnError(w, s.logger, req.ConversationID, err)
		return
	}

	writeJSON(w, http.StatusOK, VoiceMessageResponse{
		Transcript: result.Transcript,
		Confidence: result.Confidence,
		Duration:   duration,
		Activities: nonNil(out),
	})
}
