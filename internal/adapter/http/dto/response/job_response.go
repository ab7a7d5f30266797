package response

import (
	"time"

	"invoicely/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type JobResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"client_name,omitempty"`
	Price      string `json:"price"`
	PriceCents int64  `json:"price_cents"`
	Status     string `json:"status"`
	PaymentURL string `json:"payment_url,omitempty"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type JobEnvelope struct {
	Success bool        `json:"success"`
	Job     JobResponse `json:"job"`
}

type JobListEnvelope struct {
	Success bool          `json:"success"`
	Jobs    []JobResponse `json:"jobs"`
}

func FromJob(j entities.Job) JobResponse {
	return JobResponse{
		ID:         j.ID,
		Name:       j.Name,
		ClientName: j.ClientName,
		Price:      decimal.NewFromInt(j.PriceCents).Div(decimal.NewFromInt(100)).StringFixed(2),
		PriceCents: j.PriceCents,
		Status:     string(j.Status),
		PaymentURL: j.PaymentURL,
		PaidAt:     j.PaidAt,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
}

func FromJobs(jobs []entities.Job) JobListEnvelope {
	out := JobListEnvelope{Success: true, Jobs: make([]JobResponse, 0, len(jobs))}
	for _, j := range jobs {
		out.Jobs = append(out.Jobs, FromJob(j))
	}
	return out
}
