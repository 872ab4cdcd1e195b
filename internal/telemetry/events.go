package telemetry

import (
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/activity"
)

// Event names follow the Bot Framework telemetry conventions.
const (
	EventMessageReceived  = "BotMessageReceived"
	EventMessageSend      = "BotMessageSend"
	EventTurnError        = "BotTurnError"
	EventRecognizerResult = "LuisResult"
	EventQnAResult        = "QnaMessage"
	EventSentimentResult  = "SentimentResult"
	EventDialogStart      = "WaterfallStart"
	EventDialogComplete   = "WaterfallComplete"
	EventDialogCancel     = "WaterfallCancel"
)

// Client records telemetry events. A nil *Client is valid and drops everything.
type Client struct {
	logger *zap.Logger
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{logger: logger.Named("telemetry")}
}

func (c *Client) TrackEvent(name string, fields ...zap.Field) {
	if c == nil {
		return
	}
	c.logger.Info(name, append([]zap.Field{zap.String("event", name)}, fields...)...)
}

func (c *Client) TrackActivityReceived(a activity.Activity) {
	c.TrackEvent(EventMessageReceived,
		zap.String("conversation_id", a.Conversation.ID),
		zap.String("activity_type", string(a.Type)),
		zap.String("channel_id", a.ChannelID),
		zap.String("from_id", a.From.ID),
		zap.Int("text_length", len(a.Text)),
	)
}

func (c *Client) TrackActivitySent(a activity.Activity) {
	c.TrackEvent(EventMessageSend,
		zap.String("conversation_id", a.Conversation.ID),
		zap.String("activity_type", string(a.Type)),
		zap.String("reply_to_id", a.ReplyToID),
		zap.Int("attachments", len(a.Attachments)),
	)
}

func (c *Client) TrackError(conversationID string, err error) {
	if c == nil {
		return
	}
	c.logger.Error(EventTurnError,
		zap.String("event", EventTurnError),
		zap.String("conversation_id", conversationID),
		zap.Error(err),
	)
}
