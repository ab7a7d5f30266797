package interfaces

import (
	"context"
	"time"

	"invoicely/internal/domain/entities"
)

// IJobRepository abstracts Postgres persistence for Job.
//
// Not-found is reported as a zero-value Job with a nil error; callers check
// ID == "".

type IJobRepository interface {
	Create(ctx context.Context, j entities.Job) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]entities.Job, error)
	UpdatePaymentURL(ctx context.Context, id, url string) error
	UpdatePrice(ctx context.Context, id string, priceCents int64) (entities.Job, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.Job, error)
	MarkCompleted(ctx context.Context, id string) (entities.Job, error)
}
