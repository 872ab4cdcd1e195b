// Package dialogs implements the conversation flows as explicit state
// machines. Each flow reads its cursor from the session, applies the inbound
// message and runs until it needs the next user reply.
package dialogs

import (
	"strings"
	"time"

	"github.com/ruralpay/assistant/internal/activity"
	"github.com/ruralpay/assistant/internal/models"
)

// Turn is one inbound activity being processed against a session. Outbound
// activities are collected in order and delivered by the caller.
type Turn struct {
	Activity activity.Activity
	Session  *models.Session
	Now      time.Time

	responses []activity.Activity
}

func NewTurn(a activity.Activity, s *models.Session, now time.Time) *Turn {
	return &Turn{Activity: a, Session: s, Now: now}
}

// Text is the trimmed user utterance.
func (t *Turn) Text() string {
	return strings.TrimSpace(t.Activity.Text)
}

func (t *Turn) Send(a activity.Activity) {
	t.responses = append(t.responses, a)
}

func (t *Turn) SendText(text string, hint activity.InputHint) {
	t.Send(activity.Text(text, hint))
}

func (t *Turn) Responses() []activity.Activity {
	return t.responses
}

func endFlow(st *models.DialogState) {
	st.Active = models.FlowNone
	st.Step = ""
	st.Amount = nil
}
