package response

import (
	"time"

	"invoicely/internal/domain/entities"
)

type PaymentRecordResponse struct {
	ID          string     `json:"id"`
	JobID       string     `json:"job_id"`
	SessionID   string     `json:"session_id"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	CardSaved   bool       `json:"card_saved"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PaymentListEnvelope struct {
	Success  bool                    `json:"success"`
	Payments []PaymentRecordResponse `json:"payments"`
}

func FromPaymentRecords(records []entities.PaymentRecord) PaymentListEnvelope {
	out := PaymentListEnvelope{Success: true, Payments: make([]PaymentRecordResponse, 0, len(records))}
	for _, p := range records {
		out.Payments = append(out.Payments, PaymentRecordResponse{
			ID:          p.ID,
			JobID:       p.JobID,
			SessionID:   p.SessionID,
			AmountCents: p.AmountCents,
			Status:      string(p.Status),
			CardSaved:   p.CardSaved,
			PaidAt:      p.PaidAt,
			CreatedAt:   p.CreatedAt,
		})
	}
	return out
}
