// Package activity holds the subset of the Bot Framework activity schema the
// assistant exchanges with its channels.
package activity

import "time"

type Type string

const (
	TypeMessage            Type = "message"
	TypeConversationUpdate Type = "conversationUpdate"
	TypeTrace              Type = "trace"
	TypeTyping             Type = "typing"
	TypeEndOfConversation  Type = "endOfConversation"
)

// InputHint tells the channel whether the bot is waiting for a reply.
type InputHint string

const (
	InputHintAccepting InputHint = "acceptingInput"
	InputHintExpecting InputHint = "expectingInput"
	InputHintIgnoring  InputHint = "ignoringInput"
)

type ChannelAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

type ConversationAccount struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name,omitempty"`
}

// CardAction is a button on a card or a suggested action.
type CardAction struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Value string `json:"value"`
}

const (
	ActionPostBack = "postBack"
	ActionImBack   = "imBack"
	ActionOpenURL  = "openUrl"
)

type SuggestedActions struct {
	Actions []CardAction `json:"actions"`
}

type Attachment struct {
	ContentType string `json:"contentType"`
	Content     any    `json:"content"`
	Name        string `json:"name,omitempty"`
}

// Activity is one inbound or outbound message on a conversation.
type Activity struct {
	Type             Type                `json:"type" validate:"required,oneof=message conversationUpdate trace typing endOfConversation"`
	ID               string              `json:"id,omitempty"`
	Timestamp        *time.Time          `json:"timestamp,omitempty"`
	ChannelID        string              `json:"channelId,omitempty"`
	ServiceURL       string              `json:"serviceUrl,omitempty"`
	Conversation     ConversationAccount `json:"conversation"`
	From             ChannelAccount      `json:"from"`
	Recipient        ChannelAccount      `json:"recipient"`
	Text             string              `json:"text,omitempty"`
	Speak            string              `json:"speak,omitempty"`
	InputHint        InputHint           `json:"inputHint,omitempty"`
	SuggestedActions *SuggestedActions   `json:"suggestedActions,omitempty"`
	Attachments      []Attachment        `json:"attachments,omitempty"`
	MembersAdded     []ChannelAccount    `json:"membersAdded,omitempty"`
	ReplyToID        string              `json:"replyToId,omitempty"`
	Name             string              `json:"name,omitempty"`
	Label            string              `json:"label,omitempty"`
	ValueType        string              `json:"valueType,omitempty"`
	Value            any                 `json:"value,omitempty"`
}

// Text builds a plain message.
func Text(text string, hint InputHint) Activity {
	return Activity{Type: TypeMessage, Text: text, Speak: text, InputHint: hint}
}

// SuggestedActionsMessage builds a message offering quick-reply buttons.
func SuggestedActionsMessage(text string, actions ...string) Activity {
	a := Text(text, InputHintExpecting)
	a.SuggestedActions = &SuggestedActions{}
	for _, title := range actions {
		a.SuggestedActions.Actions = append(a.SuggestedActions.Actions, CardAction{
			Type:  ActionPostBack,
			Title: title,
			Value: title,
		})
	}
	return a
}

// CardMessage wraps a single attachment in a message.
func CardMessage(att Attachment) Activity {
	return Activity{Type: TypeMessage, Attachments: []Attachment{att}}
}

// Trace builds a trace activity, shown only by emulator-style channels.
func Trace(name, label, valueType string, value any) Activity {
	return Activity{Type: TypeTrace, Name: name, Label: label, ValueType: valueType, Value: value}
}

// HasHumanMembersAdded reports whether a conversationUpdate adds anyone other
// than the recipient (the bot).
func (a Activity) HasHumanMembersAdded() bool {
	for _, m := range a.MembersAdded {
		if m.ID != a.Recipient.ID {
			return true
		}
	}
	return false
}
