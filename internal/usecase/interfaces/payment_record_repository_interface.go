package interfaces

import (
	"context"
	"errors"

	"invoicely/internal/domain/entities"
)

// ErrDuplicatePayment is returned by Create when a ledger row with the same
// session id already exists (uniqueness constraint). The webhook reconciler
// treats it as a replay and no-ops.
var ErrDuplicatePayment = errors.New("payment record already exists for session")

// IPaymentRecordRepository abstracts Postgres persistence for the payment
// ledger.

type IPaymentRecordRepository interface {
	Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error)
	GetBySessionID(ctx context.Context, sessionID string) (entities.PaymentRecord, error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.PaymentRecord, error)
}
