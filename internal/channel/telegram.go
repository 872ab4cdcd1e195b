package channel

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/activity"
)

const telegramChannelID = "telegram"

type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram long-polls the Bot API and relays chats to the bot. Each chat is
// its own conversation, telegram:<chatID>.
type Telegram struct {
	api    *tgbotapi.BotAPI
	sender messageSender
	bot    TurnProcessor
	logger *zap.Logger
}

func NewTelegram(token string, debug bool, bot TurnProcessor, logger *zap.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug
	return &Telegram{api: api, sender: api, bot: bot, logger: logger.Named("telegram")}, nil
}

// Run polls for updates until ctx is cancelled.
func (t *Telegram) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.api.GetUpdatesChan(u)

	t.logger.Info("telegram channel started", zap.String("username", t.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			t.logger.Info("telegram channel stopped")
			return
		case upd := <-updates:
			t.HandleUpdate(ctx, upd)
		}
	}
}

// HandleUpdate runs one turn for a chat message and sends the replies.
func (t *Telegram) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	in, ok := telegramActivity(upd)
	if !ok {
		return
	}
	chatID := upd.Message.Chat.ID

	out, err := t.bot.ProcessActivity(ctx, in)
	if err != nil {
		t.logger.Error("turn failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	for _, a := range out {
		msg, ok := telegramMessage(chatID, a)
		if !ok {
			continue
		}
		if _, err := t.sender.Send(msg); err != nil {
			t.logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

// telegramActivity maps a chat message to an activity; /start opens the
// conversation like a member joining and /reset ends it.
func telegramActivity(upd tgbotapi.Update) (activity.Activity, bool) {
	m := upd.Message
	if m == nil || m.Chat == nil {
		return activity.Activity{}, false
	}

	user := activity.ChannelAccount{ID: "telegram-user"}
	if m.From != nil {
		user = activity.ChannelAccount{ID: strconv.FormatInt(m.From.ID, 10), Name: m.From.UserName}
	}
	a := activity.Activity{
		ID:           strconv.Itoa(m.MessageID),
		ChannelID:    telegramChannelID,
		Conversation: activity.ConversationAccount{ID: "telegram:" + strconv.FormatInt(m.Chat.ID, 10)},
		From:         user,
		Recipient:    activity.ChannelAccount{ID: "bot"},
	}

	if m.IsCommand() && m.Command() == "start" {
		a.Type = activity.TypeConversationUpdate
		a.MembersAdded = []activity.ChannelAccount{user}
		return a, true
	}
	if m.IsCommand() && m.Command() == "reset" {
		a.Type = activity.TypeEndOfConversation
		return a, true
	}

	text := strings.TrimSpace(m.Text)
	if text == "" {
		return activity.Activity{}, false
	}
	a.Type = activity.TypeMessage
	a.Text = text
	return a, true
}

// telegramMessage renders an outbound activity. Suggested actions become a
// one-time reply keyboard; traces are not shown.
func telegramMessage(chatID int64, a activity.Activity) (tgbotapi.MessageConfig, bool) {
	if a.Type != activity.TypeMessage {
		return tgbotapi.MessageConfig{}, false
	}
	text := activity.PlainText(a)
	if text == "" {
		return tgbotapi.MessageConfig{}, false
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if a.SuggestedActions != nil && len(a.SuggestedActions.Actions) > 0 {
		var rows [][]tgbotapi.KeyboardButton
		for _, action := range a.SuggestedActions.Actions {
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(action.Title)))
		}
		kb := tgbotapi.NewReplyKeyboard(rows...)
		kb.OneTimeKeyboard = true
		msg.ReplyMarkup = kb
	} else if a.InputHint == activity.InputHintExpecting {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}
	return msg, true
}
