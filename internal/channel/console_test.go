package channel

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ruralpay/assistant/internal/activity"
)

func TestConsole_Run(t *testing.T) {
	p := &MockTurnProcessor{}
	p.On("ProcessActivity", mock.Anything, mock.MatchedBy(func(a activity.Activity) bool {
		return a.Type == activity.TypeConversationUpdate && a.Conversation.ID == "console-1"
	})).Return([]activity.Activity{
		activity.Text("Welcome!", activity.InputHintIgnoring),
		activity.SuggestedActionsMessage("How can I help you today?", "Make a transaction", "View account"),
	}, nil)
	p.On("ProcessActivity", mock.Anything, mock.MatchedBy(func(a activity.Activity) bool {
		return a.Type == activity.TypeMessage && a.Text == "View account"
	})).Return([]activity.Activity{
		activity.Trace("debug", "hidden", "", nil),
		activity.Text("Amount in account: 500", activity.InputHintIgnoring),
	}, nil)

	var out bytes.Buffer
	console := NewConsole(p, strings.NewReader("2\n\n/exit\nnever sent\n"), &out, "console-1", "user", false)
	require.NoError(t, console.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Bot: Welcome!")
	assert.Contains(t, text, "  [2] View account")
	assert.Contains(t, text, "Bot: Amount in account: 500")
	assert.NotContains(t, text, "hidden")
	p.AssertNumberOfCalls(t, "ProcessActivity", 2)
}

func TestConsole_NumbersPassThroughWithoutChoices(t *testing.T) {
	p := &MockTurnProcessor{}
	p.On("ProcessActivity", mock.Anything, mock.MatchedBy(func(a activity.Activity) bool {
		return a.Type == activity.TypeConversationUpdate
	})).Return([]activity.Activity{activity.Text("Please enter an amount to send.", activity.InputHintExpecting)}, nil)
	p.On("ProcessActivity", mock.Anything, mock.MatchedBy(func(a activity.Activity) bool {
		return a.Text == "2"
	})).Return([]activity.Activity{}, nil)

	var out bytes.Buffer
	require.NoError(t, NewConsole(p, strings.NewReader("2\n"), &out, "c", "u", true).Run(context.Background()))
	p.AssertExpectations(t)
}

func TestConsole_Reset(t *testing.T) {
	p := &MockTurnProcessor{}
	p.On("ProcessActivity", mock.Anything, mock.MatchedBy(func(a activity.Activity) bool {
		return a.Type == activity.TypeConversationUpdate
	})).Return([]activity.Activity{activity.Text("Welcome!", activity.InputHintIgnoring)}, nil)
	p.On("ProcessActivity", mock.Anything, mock.MatchedBy(func(a activity.Activity) bool {
		return a.Type == activity.TypeEndOfConversation && a.Conversation.ID == "c"
	})).Return([]activity.Activity(nil), nil).Once()

	var out bytes.Buffer
	require.NoError(t, NewConsole(p, strings.NewReader("/reset\n"), &out, "c", "u", false).Run(context.Background()))

	p.AssertExpectations(t)
	p.AssertNumberOfCalls(t, "ProcessActivity", 3)
	assert.Equal(t, 2, strings.Count(out.String(), "Bot: Welcome!"))
}

func TestConsole_ProcessorError(t *testing.T) {
	p := &MockTurnProcessor{}
	p.On("ProcessActivity", mock.Anything, mock.Anything).Return(nil, errors.New("store down"))

	err := NewConsole(p, strings.NewReader(""), &bytes.Buffer{}, "c", "u", false).Run(context.Background())
	assert.ErrorContains(t, err, "store down")
}
