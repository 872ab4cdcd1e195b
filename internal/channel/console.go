package channel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ruralpay/assistant/internal/activity"
)

const (
	// ExitCommand ends a console session.
	ExitCommand = "/exit"
	// ResetCommand forgets the conversation and opens it again.
	ResetCommand = "/reset"
)

// Console chats with the bot over line-oriented text streams.
type Console struct {
	bot            TurnProcessor
	in             io.Reader
	out            io.Writer
	conversationID string
	userID         string
	showTraces     bool

	// titles of the last suggested actions, picked by number
	choices []string
}

func NewConsole(bot TurnProcessor, in io.Reader, out io.Writer, conversationID, userID string, showTraces bool) *Console {
	return &Console{bot: bot, in: in, out: out, conversationID: conversationID, userID: userID, showTraces: showTraces}
}

// Run opens the conversation and relays lines until EOF, ExitCommand or
// ctx cancellation.
func (c *Console) Run(ctx context.Context) error {
	if err := c.open(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == ExitCommand {
			return nil
		}
		if line == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if line == ResetCommand {
			if err := c.turn(ctx, activity.Activity{Type: activity.TypeEndOfConversation}); err != nil {
				return err
			}
			if err := c.open(ctx); err != nil {
				return err
			}
			continue
		}
		if err := c.turn(ctx, activity.Activity{Type: activity.TypeMessage, Text: c.resolveChoice(line)}); err != nil {
			return err
		}
	}
}

func (c *Console) open(ctx context.Context) error {
	user := activity.ChannelAccount{ID: c.userID, Name: c.userID}
	return c.turn(ctx, activity.Activity{
		Type:         activity.TypeConversationUpdate,
		MembersAdded: []activity.ChannelAccount{user},
	})
}

func (c *Console) turn(ctx context.Context, a activity.Activity) error {
	a.ChannelID = "console"
	a.Conversation = activity.ConversationAccount{ID: c.conversationID}
	a.From = activity.ChannelAccount{ID: c.userID}
	a.Recipient = activity.ChannelAccount{ID: "bot"}

	out, err := c.bot.ProcessActivity(ctx, a)
	if err != nil {
		return fmt.Errorf("process activity: %w", err)
	}
	c.choices = nil
	for _, reply := range out {
		c.print(reply)
	}
	return nil
}

func (c *Console) resolveChoice(line string) string {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(c.choices) {
		return line
	}
	return c.choices[n-1]
}

func (c *Console) print(a activity.Activity) {
	if a.Type == activity.TypeTrace {
		if c.showTraces {
			fmt.Fprintf(c.out, "[trace] %s: %s\n", a.Name, a.Label)
		}
		return
	}
	if text := activity.PlainText(a); text != "" {
		fmt.Fprintf(c.out, "Bot: %s\n", strings.ReplaceAll(text, "\n", "\n     "))
	}
	if a.SuggestedActions != nil {
		for _, action := range a.SuggestedActions.Actions {
			c.choices = append(c.choices, action.Title)
			fmt.Fprintf(c.out, "  [%d] %s\n", len(c.choices), action.Title)
		}
	}
}
