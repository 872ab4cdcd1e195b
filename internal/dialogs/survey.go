package dialogs

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/activity"
	"github.com/ruralpay/assistant/internal/cognitive"
	"github.com/ruralpay/assistant/internal/config"
	"github.com/ruralpay/assistant/internal/models"
	"github.com/ruralpay/assistant/internal/telemetry"
)

// SurveyDialog offers a short survey: a rating, then a free-text comment
// whose sentiment is reported back. The rating is not stored.
type SurveyDialog struct {
	cfg       *config.DialogConfig
	sentiment cognitive.SentimentAnalyzer
	telemetry *telemetry.Client
	logger    *zap.Logger
}

func NewSurveyDialog(cfg *config.DialogConfig, sentiment cognitive.SentimentAnalyzer, tc *telemetry.Client, logger *zap.Logger) *SurveyDialog {
	return &SurveyDialog{cfg: cfg, sentiment: sentiment, telemetry: tc, logger: logger.Named("survey")}
}

func (d *SurveyDialog) Begin(ctx context.Context, t *Turn) (bool, error) {
	st := &t.Session.Dialog
	st.Active = models.FlowSurvey
	st.Step = models.StepOffer
	d.telemetry.TrackEvent(telemetry.EventDialogStart,
		zap.String("dialog", string(models.FlowSurvey)),
		zap.String("conversation_id", t.Session.ConversationID),
	)
	t.Send(confirmPrompt(msgSurveyOffer))
	return false, nil
}

func (d *SurveyDialog) Continue(ctx context.Context, t *Turn) (bool, error) {
	st := &t.Session.Dialog
	switch st.Step {
	case models.StepOffer:
		yes, ok := recognizeConfirm(t.Text())
		if !ok {
			t.Send(confirmPrompt(msgSurveyOffer))
			return false, nil
		}
		if !yes {
			d.finish(t, "declined")
			return true, nil
		}
		st.Step = models.StepRate
		t.SendText(d.ratingPrompt(), activity.InputHintExpecting)
		return false, nil

	case models.StepRate:
		rating, ok := recognizeNumber(t.Text())
		if !ok || !d.validRating(rating) {
			t.SendText(fmt.Sprintf(msgRatingRetry, d.cfg.MinRating, d.cfg.MaxRating), activity.InputHintExpecting)
			return false, nil
		}
		st.Step = models.StepComment
		t.SendText(msgCommentPrompt, activity.InputHintExpecting)
		return false, nil

	case models.StepComment:
		comment := t.Text()
		if comment == "" {
			t.SendText(msgCommentPrompt, activity.InputHintExpecting)
			return false, nil
		}
		sentiment, err := d.sentiment.Analyze(ctx, comment)
		if err != nil {
			return false, fmt.Errorf("analyze survey comment: %w", err)
		}
		d.telemetry.TrackEvent(telemetry.EventSentimentResult,
			zap.String("conversation_id", t.Session.ConversationID),
			zap.String("sentiment", string(sentiment)),
		)
		t.SendText(fmt.Sprintf(msgSurveyThanks, sentiment), activity.InputHintIgnoring)
		d.finish(t, "completed")
		return true, nil

	default:
		return false, fmt.Errorf("survey dialog: unexpected step %q", st.Step)
	}
}

func (d *SurveyDialog) Reprompt(t *Turn) {
	switch t.Session.Dialog.Step {
	case models.StepRate:
		t.SendText(d.ratingPrompt(), activity.InputHintExpecting)
	case models.StepComment:
		t.SendText(msgCommentPrompt, activity.InputHintExpecting)
	default:
		t.Send(confirmPrompt(msgSurveyOffer))
	}
}

// validRating enforces the closed interval [MinRating, MaxRating].
func (d *SurveyDialog) validRating(rating decimal.Decimal) bool {
	return rating.GreaterThanOrEqual(decimal.NewFromInt(int64(d.cfg.MinRating))) &&
		rating.LessThanOrEqual(decimal.NewFromInt(int64(d.cfg.MaxRating)))
}

func (d *SurveyDialog) ratingPrompt() string {
	return fmt.Sprintf(msgRatingPrompt, d.cfg.MinRating, d.cfg.MaxRating)
}

func (d *SurveyDialog) finish(t *Turn, outcome string) {
	endFlow(&t.Session.Dialog)
	d.telemetry.TrackEvent(telemetry.EventDialogComplete,
		zap.String("dialog", string(models.FlowSurvey)),
		zap.String("conversation_id", t.Session.ConversationID),
		zap.String("outcome", outcome),
	)
}
