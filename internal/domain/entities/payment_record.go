package entities

import "time"

// PaymentStatus represents the ledger outcome of one checkout.

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentRecord is an append-style ledger entry, created exactly once per
// completed checkout session (or per manual mark-paid action).
//
// SessionID is the idempotency key: the checkout session id for processor
// payments, or "manual:<job id>" for the manual path. A uniqueness
// constraint on it is what makes webhook re-delivery safe.

type PaymentRecord struct {
	ID          string        `json:"id"`
	JobID       string        `json:"job_id"`
	SessionID   string        `json:"session_id"`
	AmountCents int64         `json:"amount_cents"`
	Status      PaymentStatus `json:"status"`
	CardSaved   bool          `json:"card_saved"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
