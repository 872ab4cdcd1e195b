package dialogs

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/activity"
	"github.com/ruralpay/assistant/internal/cognitive"
	"github.com/ruralpay/assistant/internal/config"
	"github.com/ruralpay/assistant/internal/models"
	"github.com/ruralpay/assistant/internal/telemetry"
)

// MainDialog is the top-level loop: intro, act, survey gate, final, and
// back to intro. The session's DialogState is its only cursor.
type MainDialog struct {
	cfg         *config.DialogConfig
	recognizer  cognitive.Recognizer
	qna         cognitive.QnA
	transaction *TransactionDialog
	survey      *SurveyDialog
	telemetry   *telemetry.Client
	logger      *zap.Logger
}

func NewMainDialog(
	cfg *config.DialogConfig,
	recognizer cognitive.Recognizer,
	qna cognitive.QnA,
	sentiment cognitive.SentimentAnalyzer,
	tc *telemetry.Client,
	logger *zap.Logger,
) *MainDialog {
	logger = logger.Named("dialogs")
	return &MainDialog{
		cfg:         cfg,
		recognizer:  recognizer,
		qna:         qna,
		transaction: NewTransactionDialog(cfg, tc, logger),
		survey:      NewSurveyDialog(cfg, sentiment, tc, logger),
		telemetry:   tc,
		logger:      logger,
	}
}

// Begin restarts the conversation from the intro step, dropping any flow in
// progress.
func (d *MainDialog) Begin(ctx context.Context, t *Turn) error {
	t.Session.ResetDialog()
	return d.runFrom(ctx, t, models.MainStepBegin)
}

// Run resumes the conversation with the turn's inbound message.
func (d *MainDialog) Run(ctx context.Context, t *Turn) error {
	st := &t.Session.Dialog

	if st.Active != models.FlowNone {
		if d.interrupt(t) {
			return nil
		}

		var done bool
		var err error
		switch st.Active {
		case models.FlowTransaction:
			done, err = d.transaction.Continue(ctx, t)
		case models.FlowSurvey:
			done, err = d.survey.Continue(ctx, t)
		default:
			return fmt.Errorf("main dialog: unknown flow %q", st.Active)
		}
		if err != nil || !done {
			return err
		}
		return d.runFrom(ctx, t, st.Main)
	}

	if st.Main == models.MainStepAct {
		return d.runFrom(ctx, t, models.MainStepAct)
	}

	// Nothing pending: the message only opens the conversation.
	return d.runFrom(ctx, t, models.MainStepBegin)
}

func (d *MainDialog) runFrom(ctx context.Context, t *Turn, step models.MainStep) error {
	st := &t.Session.Dialog
	account := &t.Session.Account

	for {
		switch step {
		case models.MainStepBegin:
			if !d.recognizer.IsConfigured() {
				t.SendText(msgRecognizerNotConfigured, activity.InputHintIgnoring)
				step = models.MainStepAct
				continue
			}
			text := msgGreeting
			if st.RestartMessage != "" {
				text = st.RestartMessage
			}
			t.Send(activity.SuggestedActionsMessage(text, actionMakeTransaction, actionViewTransactions, actionViewAccount))
			st.Main = models.MainStepAct
			return nil

		case models.MainStepAct:
			suspended, err := d.act(ctx, t)
			if err != nil || suspended {
				return err
			}
			step = models.MainStepSurvey

		case models.MainStepSurvey:
			account.TimesHelped++
			if d.cfg.SurveyEvery > 0 && account.TimesHelped%d.cfg.SurveyEvery == 0 {
				st.Main = models.MainStepFinal
				if _, err := d.survey.Begin(ctx, t); err != nil {
					return err
				}
				return nil
			}
			step = models.MainStepFinal

		case models.MainStepFinal:
			if account.TransactionsMade == d.cfg.UpsellAfter && !account.RecommendedUpsell {
				t.SendText(msgUpsell, activity.InputHintIgnoring)
				account.RecommendedUpsell = true
			}
			st.Main = models.MainStepBegin
			st.RestartMessage = msgRestart
			step = models.MainStepBegin

		default:
			return fmt.Errorf("main dialog: unknown step %q", step)
		}
	}
}

// act dispatches the pending utterance. suspended is true when a child flow
// took over the conversation.
func (d *MainDialog) act(ctx context.Context, t *Turn) (suspended bool, err error) {
	st := &t.Session.Dialog

	if !d.recognizer.IsConfigured() {
		st.Main = models.MainStepSurvey
		return d.beginTransaction(ctx, t, nil)
	}

	rec, err := d.recognizer.Recognize(ctx, t.Text())
	if err != nil {
		return false, fmt.Errorf("recognize utterance: %w", err)
	}
	d.telemetry.TrackEvent(telemetry.EventRecognizerResult,
		zap.String("conversation_id", t.Session.ConversationID),
		zap.String("intent", rec.Intent.String()),
		zap.String("label", rec.Label),
		zap.String("banking_intent", rec.Banking.String()),
	)

	switch rec.Intent {
	case cognitive.IntentBanking:
		return d.banking(ctx, t, rec)
	case cognitive.IntentQnA:
		return false, d.answer(ctx, t)
	case cognitive.IntentUnrecognized:
		d.logger.Info("unrecognized intent",
			zap.String("conversation_id", t.Session.ConversationID),
			zap.String("label", rec.Label),
		)
		t.SendText(fmt.Sprintf(msgUnrecognizedIntent, rec.Label), activity.InputHintIgnoring)
		return false, nil
	default:
		return false, fmt.Errorf("main dialog: unhandled intent %v", rec.Intent)
	}
}

func (d *MainDialog) banking(ctx context.Context, t *Turn, rec cognitive.Recognition) (bool, error) {
	number, hasNumber := rec.FirstEntity(cognitive.EntityNumber)

	switch rec.Banking {
	case cognitive.BankingMakeTransaction:
		var amount *decimal.Decimal
		if hasNumber {
			if v, ok := recognizeNumber(number); ok {
				amount = &v
			}
		}
		t.Session.Dialog.Main = models.MainStepSurvey
		return d.beginTransaction(ctx, t, amount)

	case cognitive.BankingViewAccount:
		t.Send(activity.CardMessage(accountCard(t.Session.Account, d.cfg.CardImageBase, d.cfg.LoginURL)))
		return false, nil

	case cognitive.BankingViewTransactions:
		if !hasNumber || rec.HasEntity(cognitive.EntityHistorical) {
			t.Send(activity.CardMessage(transactionCard(t.Session.Account.Username, t.Session.Transactions, d.cfg.CardImageBase)))
			return false, nil
		}
		id, err := strconv.Atoi(number)
		tx, found := t.Session.FindTransaction(id)
		if err != nil || !found {
			t.SendText(fmt.Sprintf(msgTransactionNotFound, number), activity.InputHintIgnoring)
			return false, nil
		}
		t.Send(activity.CardMessage(transactionCard(t.Session.Account.Username, []models.Transaction{tx}, d.cfg.CardImageBase)))
		return false, nil

	default:
		return false, nil
	}
}

func (d *MainDialog) answer(ctx context.Context, t *Turn) error {
	answers, err := d.qna.Answers(ctx, t.Text())
	if err != nil {
		return fmt.Errorf("query knowledge base: %w", err)
	}
	d.telemetry.TrackEvent(telemetry.EventQnAResult,
		zap.String("conversation_id", t.Session.ConversationID),
		zap.Int("answers", len(answers)),
	)
	if len(answers) == 0 {
		t.SendText(msgNoAnswer, activity.InputHintIgnoring)
		return nil
	}
	t.SendText(answers[0].Answer, activity.InputHintIgnoring)
	return nil
}

func (d *MainDialog) beginTransaction(ctx context.Context, t *Turn, amount *decimal.Decimal) (bool, error) {
	done, err := d.transaction.Begin(ctx, t, amount)
	if err != nil {
		return false, err
	}
	return !done, nil
}

// interrupt handles help and cancel while a child flow is waiting on input.
func (d *MainDialog) interrupt(t *Turn) bool {
	switch detectInterruption(t.Text()) {
	case interruptHelp:
		t.SendText(msgHelp, activity.InputHintExpecting)
		switch t.Session.Dialog.Active {
		case models.FlowTransaction:
			d.transaction.Reprompt(t)
		case models.FlowSurvey:
			d.survey.Reprompt(t)
		}
		return true
	case interruptCancel:
		d.telemetry.TrackEvent(telemetry.EventDialogCancel,
			zap.String("conversation_id", t.Session.ConversationID),
			zap.String("dialog", string(t.Session.Dialog.Active)),
		)
		t.SendText(msgCancelling, activity.InputHintIgnoring)
		t.Session.ResetDialog()
		return true
	default:
		return false
	}
}
