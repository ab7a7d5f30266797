package entities

import "time"

// JobStatus represents the lifecycle of a billable job.
//
// Transitions:
//   - pending -> paid (webhook reconciliation or manual mark-paid)
//   - paid -> completed (manual)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusPaid      JobStatus = "paid"
	JobStatusCompleted JobStatus = "completed"
)

// Job is a billable unit of work owned by a company (the tenant partition).
//
// Monetary representation:
//   - PriceCents is the job price in minor currency units (e.g. cents),
//     matching what the payment processor charges. It is immutable once a
//     checkout link has been issued (PaymentURL non-empty).

type Job struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	Name       string    `json:"name"`
	ClientName string    `json:"client_name"`
	PriceCents int64     `json:"price_cents"`
	Status     JobStatus `json:"status"`
	PaymentURL string    `json:"payment_url,omitempty"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
