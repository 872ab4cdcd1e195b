// Package channel connects chat front-ends other than the HTTP endpoint to
// the bot.
package channel

import (
	"context"

	"github.com/ruralpay/assistant/internal/activity"
)

// TurnProcessor runs one conversational turn.
type TurnProcessor interface {
	ProcessActivity(ctx context.Context, in activity.Activity) ([]activity.Activity, error)
}
