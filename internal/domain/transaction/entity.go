package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies ledger entries. Credits carry positive amounts,
// debits negative.
type Type string

const (
	TypeTopUp     Type = "top_up"
	TypeCourseFee Type = "course_fee"
	TypePayment   Type = "payment"
	TypeRefund    Type = "refund"
)

// Status represents transaction status
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Transaction is an append-only ledger entry. The balance after a
// transaction is never stored, only derived.
type Transaction struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AccountID uuid.UUID `db:"account_id" json:"account_id"`
	Type      Type      `db:"type" json:"type"`
	Amount    int64     `db:"amount" json:"amount"` // signed, cents
	Status    Status    `db:"status" json:"status"`
	Reference *string   `db:"reference" json:"reference,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
