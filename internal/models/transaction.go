package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle label of a ledger entry.
type TransactionStatus int

const (
	TransactionInProcess TransactionStatus = iota
	TransactionDone
)

// CardDateLayout is the date format shown on transaction cards.
const CardDateLayout = "January 2, 2006"

func (s TransactionStatus) String() string {
	switch s {
	case TransactionInProcess:
		return "In Process"
	case TransactionDone:
		return "Done"
	default:
		return fmt.Sprintf("TransactionStatus(%d)", int(s))
	}
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch raw {
	case "In Process":
		*s = TransactionInProcess
	case "Done":
		*s = TransactionDone
	default:
		return fmt.Errorf("unknown transaction status %q", raw)
	}
	return nil
}

// Transaction is one ledger entry. IDs are assigned sequentially from 0.
type Transaction struct {
	ID        int               `json:"id"`
	Amount    decimal.Decimal   `json:"amount"`
	Status    TransactionStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
}

// Date renders the timestamp the way transaction cards display it.
func (t Transaction) Date() string {
	return t.Timestamp.Format(CardDateLayout)
}
