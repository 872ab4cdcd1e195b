// Package bot adapts inbound activities to the dialogs: it loads the
// conversation's session, runs one turn and persists the result.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/activity"
	"github.com/ruralpay/assistant/internal/dialogs"
	"github.com/ruralpay/assistant/internal/models"
	"github.com/ruralpay/assistant/internal/store"
	"github.com/ruralpay/assistant/internal/telemetry"
	"github.com/ruralpay/assistant/internal/validation"
)

// ErrInvalidActivity wraps validation failures of inbound activities.
var ErrInvalidActivity = errors.New("invalid activity")

const (
	WelcomeMessage = "Welcome to the RuralPay banking assistant!"

	turnErrorTraceName = "OnTurnError Trace"
	turnErrorTraceText = "The bot encountered an unhandled error."
	turnErrorValueType = "https://www.botframework.com/schemas/error"
	turnErrorMessage   = "The bot encountered an error or bug."
	turnErrorFollowUp  = "To continue to run this bot, please fix the bot source code."
)

// Bot runs turns for any number of conversations. Turns of the same
// conversation never overlap.
type Bot struct {
	dialog    *dialogs.MainDialog
	store     store.SessionStore
	seed      models.Seed
	validator *validation.ValidationHelper
	telemetry *telemetry.Client
	logger    *zap.Logger
	locks     *conversationLocks
	now       func() time.Time
}

func New(dialog *dialogs.MainDialog, st store.SessionStore, seed models.Seed, tc *telemetry.Client, logger *zap.Logger) *Bot {
	return &Bot{
		dialog:    dialog,
		store:     st,
		seed:      seed,
		validator: validation.NewValidationHelper(),
		telemetry: tc,
		logger:    logger.Named("bot"),
		locks:     newConversationLocks(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for ledger entries and stamps.
func (b *Bot) WithClock(now func() time.Time) *Bot {
	b.now = now
	return b
}

// ProcessActivity runs one turn and returns the outbound activities in send
// order. Dialog failures are answered with the turn error messages and do
// not surface as an error; storage failures do.
func (b *Bot) ProcessActivity(ctx context.Context, in activity.Activity) ([]activity.Activity, error) {
	if err := b.validator.ValidateStruct(&in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidActivity, err)
	}
	b.telemetry.TrackActivityReceived(in)

	conversationID := in.Conversation.ID
	unlock := b.locks.lock(conversationID)
	defer unlock()

	if in.Type == activity.TypeEndOfConversation {
		return nil, b.endConversation(ctx, conversationID)
	}

	now := b.now()
	session, err := b.loadSession(ctx, conversationID, now)
	if err != nil {
		return nil, err
	}

	turn := dialogs.NewTurn(in, session, now)
	if err := b.runTurn(ctx, turn); err != nil {
		b.onTurnError(turn, err)
	}

	session.UpdatedAt = now
	if err := b.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session %s: %w", conversationID, err)
	}

	out := turn.Responses()
	for i := range out {
		b.stamp(&out[i], in, now)
		b.telemetry.TrackActivitySent(out[i])
	}
	return out, nil
}

// endConversation forgets the conversation; its next activity starts from
// the seed again.
func (b *Bot) endConversation(ctx context.Context, conversationID string) error {
	if err := b.store.Delete(ctx, conversationID); err != nil {
		return fmt.Errorf("delete session %s: %w", conversationID, err)
	}
	b.logger.Info("conversation ended", zap.String("conversation_id", conversationID))
	return nil
}

func (b *Bot) loadSession(ctx context.Context, conversationID string, now time.Time) (*models.Session, error) {
	session, err := b.store.Load(ctx, conversationID)
	if errors.Is(err, store.ErrNotFound) {
		b.logger.Debug("new conversation", zap.String("conversation_id", conversationID))
		return models.NewSession(conversationID, b.seed, now), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", conversationID, err)
	}
	return session, nil
}

func (b *Bot) runTurn(ctx context.Context, turn *dialogs.Turn) error {
	switch turn.Activity.Type {
	case activity.TypeMessage:
		return b.dialog.Run(ctx, turn)
	case activity.TypeConversationUpdate:
		if !turn.Activity.HasHumanMembersAdded() {
			return nil
		}
		turn.SendText(WelcomeMessage, activity.InputHintIgnoring)
		return b.dialog.Begin(ctx, turn)
	default:
		return nil
	}
}

// traceChannels are the local developer channels that receive trace
// activities. Everyone else only sees the turn error messages.
var traceChannels = map[string]bool{
	"emulator": true,
	"console":  true,
}

// onTurnError reports the failure and clears the dialog so the next message
// starts over. Account and ledger are kept. The error itself goes to the
// log only.
func (b *Bot) onTurnError(turn *dialogs.Turn, err error) {
	b.telemetry.TrackError(turn.Session.ConversationID, err)
	b.logger.Error("unhandled turn error",
		zap.String("conversation_id", turn.Session.ConversationID),
		zap.Error(err),
	)

	if traceChannels[turn.Activity.ChannelID] {
		turn.Send(activity.Trace(turnErrorTraceName, turnErrorTraceText, turnErrorValueType, "TurnError"))
	}
	turn.SendText(turnErrorMessage, activity.InputHintExpecting)
	turn.SendText(turnErrorFollowUp, activity.InputHintExpecting)
	turn.Session.ResetDialog()
}

func (b *Bot) stamp(out *activity.Activity, in activity.Activity, now time.Time) {
	ts := now
	out.ID = uuid.NewString()
	out.Timestamp = &ts
	out.ChannelID = in.ChannelID
	out.ServiceURL = in.ServiceURL
	out.Conversation = in.Conversation
	out.From = in.Recipient
	out.Recipient = in.From
	out.ReplyToID = in.ID
}
