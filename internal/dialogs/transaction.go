package dialogs

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/activity"
	"github.com/ruralpay/assistant/internal/config"
	"github.com/ruralpay/assistant/internal/models"
	"github.com/ruralpay/assistant/internal/telemetry"
)

// TransactionDialog collects an amount, asks for confirmation and debits the
// account. Steps: amount, confirm, finalize.
type TransactionDialog struct {
	cfg       *config.DialogConfig
	telemetry *telemetry.Client
	logger    *zap.Logger
}

func NewTransactionDialog(cfg *config.DialogConfig, tc *telemetry.Client, logger *zap.Logger) *TransactionDialog {
	return &TransactionDialog{cfg: cfg, telemetry: tc, logger: logger.Named("transaction")}
}

// validAmount enforces the open interval (MinAmount, MaxAmount).
func (d *TransactionDialog) validAmount(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.NewFromInt(int64(d.cfg.MinAmount))) &&
		amount.LessThan(decimal.NewFromInt(int64(d.cfg.MaxAmount)))
}

func (d *TransactionDialog) rangePrompt() string {
	return fmt.Sprintf(msgAmountRangePrompt, d.cfg.MinAmount, d.cfg.MaxAmount)
}

func (d *TransactionDialog) retryPrompt() string {
	return fmt.Sprintf(msgAmountRetry, d.cfg.MinAmount, d.cfg.MaxAmount)
}

// Begin starts the flow. A prefilled amount skips the amount prompt when it
// is in range; an out-of-range one asks again with the explicit range.
func (d *TransactionDialog) Begin(ctx context.Context, t *Turn, amount *decimal.Decimal) (bool, error) {
	st := &t.Session.Dialog
	st.Active = models.FlowTransaction
	st.Amount = nil
	d.telemetry.TrackEvent(telemetry.EventDialogStart,
		zap.String("dialog", string(models.FlowTransaction)),
		zap.String("conversation_id", t.Session.ConversationID),
	)

	switch {
	case amount == nil:
		st.Step = models.StepAmount
		t.SendText(msgAmountPrompt, activity.InputHintExpecting)
		return false, nil
	case !d.validAmount(*amount):
		st.Step = models.StepAmount
		t.SendText(d.rangePrompt(), activity.InputHintExpecting)
		return false, nil
	default:
		v := *amount
		st.Amount = &v
		return d.confirm(t), nil
	}
}

// Continue applies the user's reply to the pending step.
func (d *TransactionDialog) Continue(ctx context.Context, t *Turn) (bool, error) {
	st := &t.Session.Dialog
	switch st.Step {
	case models.StepAmount:
		amount, ok := recognizeNumber(t.Text())
		if !ok || !d.validAmount(amount) {
			t.SendText(d.retryPrompt(), activity.InputHintExpecting)
			return false, nil
		}
		st.Amount = &amount
		return d.confirm(t), nil

	case models.StepConfirm:
		yes, ok := recognizeConfirm(t.Text())
		if !ok {
			t.Send(confirmPrompt(d.confirmText(st)))
			return false, nil
		}
		if !yes {
			d.finish(t, "declined")
			return true, nil
		}
		return true, d.finalize(t)

	default:
		return false, fmt.Errorf("transaction dialog: unexpected step %q", st.Step)
	}
}

// Reprompt repeats the question the flow is waiting on.
func (d *TransactionDialog) Reprompt(t *Turn) {
	st := &t.Session.Dialog
	if st.Step == models.StepConfirm {
		t.Send(confirmPrompt(d.confirmText(st)))
		return
	}
	t.SendText(msgAmountPrompt, activity.InputHintExpecting)
}

func (d *TransactionDialog) confirmText(st *models.DialogState) string {
	amount := "0"
	if st.Amount != nil {
		amount = st.Amount.String()
	}
	return fmt.Sprintf(msgConfirmTransaction, amount)
}

func (d *TransactionDialog) confirm(t *Turn) bool {
	st := &t.Session.Dialog
	st.Step = models.StepConfirm
	t.Send(confirmPrompt(d.confirmText(st)))
	return false
}

func (d *TransactionDialog) finalize(t *Turn) error {
	st := &t.Session.Dialog
	if st.Amount == nil {
		return errors.New("transaction dialog: confirmed without an amount")
	}
	amount := *st.Amount

	tx, err := t.Session.Debit(amount, t.Now)
	if errors.Is(err, models.ErrInsufficientFunds) {
		t.SendText(msgInsufficientFunds, activity.InputHintIgnoring)
		d.finish(t, "insufficient_funds")
		return nil
	}
	if err != nil {
		return fmt.Errorf("debit account: %w", err)
	}

	d.logger.Info("transaction recorded",
		zap.String("conversation_id", t.Session.ConversationID),
		zap.Int("transaction_id", tx.ID),
		zap.String("amount", amount.String()),
		zap.String("balance", t.Session.Account.Balance.String()),
	)
	t.SendText(fmt.Sprintf(msgTransactionSent, amount.String(), t.Session.Account.Balance.String()), activity.InputHintIgnoring)
	d.finish(t, "sent")
	return nil
}

func (d *TransactionDialog) finish(t *Turn, outcome string) {
	endFlow(&t.Session.Dialog)
	d.telemetry.TrackEvent(telemetry.EventDialogComplete,
		zap.String("dialog", string(models.FlowTransaction)),
		zap.String("conversation_id", t.Session.ConversationID),
		zap.String("outcome", outcome),
	)
}
