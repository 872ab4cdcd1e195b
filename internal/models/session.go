package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MainStep is the resume point of the main conversation flow.
type MainStep string

const (
	MainStepBegin  MainStep = ""
	MainStepAct    MainStep = "act"
	MainStepSurvey MainStep = "survey"
	MainStepFinal  MainStep = "final"
)

// Flow names the child flow currently holding the conversation.
type Flow string

const (
	FlowNone        Flow = ""
	FlowTransaction Flow = "transaction"
	FlowSurvey      Flow = "survey"
)

// FlowStep is the prompt a child flow is waiting on.
type FlowStep string

const (
	StepAmount  FlowStep = "amount"
	StepConfirm FlowStep = "confirm"
	StepOffer   FlowStep = "offer"
	StepRate    FlowStep = "rate"
	StepComment FlowStep = "comment"
)

// DialogState is the persisted turn cursor: which step runs on the next
// inbound message and any partially collected input.
type DialogState struct {
	Main           MainStep         `json:"main,omitempty"`
	Active         Flow             `json:"active,omitempty"`
	Step           FlowStep         `json:"step,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	RestartMessage string           `json:"restartMessage,omitempty"`
}

// IsEmpty reports whether no dialog is in progress.
func (d DialogState) IsEmpty() bool {
	return d.Main == MainStepBegin && d.Active == FlowNone
}

// Session is everything the assistant keeps for one conversation.
type Session struct {
	ConversationID string        `json:"conversationId"`
	Account        Account       `json:"account"`
	Transactions   []Transaction `json:"transactions"`
	Dialog         DialogState   `json:"dialog"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// SeedEntry is a historical ledger entry created with a new session.
type SeedEntry struct {
	Amount  decimal.Decimal
	DaysAgo int
}

// Seed holds the fixed values a new session starts from.
type Seed struct {
	Username string
	Balance  decimal.Decimal
	History  []SeedEntry
}

// DefaultSeed is the demo account every conversation starts with.
func DefaultSeed() Seed {
	return Seed{
		Username: "John Doe",
		Balance:  decimal.NewFromInt(500),
		History: []SeedEntry{
			{Amount: decimal.NewFromInt(25), DaysAgo: 7},
			{Amount: decimal.NewFromInt(60), DaysAgo: 2},
		},
	}
}

// NewSession creates a seeded session for a conversation.
func NewSession(conversationID string, seed Seed, now time.Time) *Session {
	s := &Session{
		ConversationID: conversationID,
		Account: Account{
			Username: seed.Username,
			Balance:  seed.Balance,
		},
		Transactions: make([]Transaction, 0, len(seed.History)),
		UpdatedAt:    now,
	}
	for i, entry := range seed.History {
		s.Transactions = append(s.Transactions, Transaction{
			ID:        i,
			Amount:    entry.Amount,
			Status:    TransactionDone,
			Timestamp: now.AddDate(0, 0, -entry.DaysAgo),
		})
	}
	return s
}

// Debit withdraws amount from the account and appends the matching ledger
// entry. Nothing is mutated when the balance is insufficient.
func (s *Session) Debit(amount decimal.Decimal, now time.Time) (Transaction, error) {
	if !s.Account.CanCover(amount) {
		return Transaction{}, ErrInsufficientFunds
	}

	tx := Transaction{
		ID:        len(s.Transactions),
		Amount:    amount,
		Status:    TransactionInProcess,
		Timestamp: now,
	}
	s.Account.Balance = s.Account.Balance.Sub(amount)
	s.Account.TransactionsMade++
	s.Transactions = append(s.Transactions, tx)
	return tx, nil
}

// FindTransaction looks up a ledger entry by id.
func (s *Session) FindTransaction(id int) (Transaction, bool) {
	for _, tx := range s.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// ResetDialog clears the turn cursor. Account and ledger are kept.
func (s *Session) ResetDialog() {
	s.Dialog = DialogState{}
}

// Value implements driver.Valuer for JSONB columns
func (s Session) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB columns
func (s *Session) Scan(value any) error {
	if value == nil {
		return errors.New("session: nil value")
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, s)
}
