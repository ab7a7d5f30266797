package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PaymentRecordPostgresRepository persists the payment ledger.
//
// The UNIQUE constraint on session_id is load-bearing: it is the idempotency
// key that makes webhook re-delivery (and repeated manual mark-paid) safe
// without any application-level locking.

type PaymentRecordPostgresRepository struct {
	db *sql.DB
}

var _ interfaces.IPaymentRecordRepository = (*PaymentRecordPostgresRepository)(nil)

func NewPaymentRecordPostgresRepository(db *sql.DB) *PaymentRecordPostgresRepository {
	return &PaymentRecordPostgresRepository{db: db}
}

const paymentColumns = `id, job_id, session_id, amount_cents, status, card_saved, paid_at, created_at`

func (r *PaymentRecordPostgresRepository) Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_records (id, job_id, session_id, amount_cents, status, card_saved, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.JobID, p.SessionID, p.AmountCents, p.Status, p.CardSaved, p.PaidAt, p.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entities.PaymentRecord{}, interfaces.ErrDuplicatePayment
		}
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

func (r *PaymentRecordPostgresRepository) GetBySessionID(ctx context.Context, sessionID string) (entities.PaymentRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payment_records WHERE session_id = $1`, sessionID)
	p, err := scanPaymentRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.PaymentRecord{}, nil
	}
	return p, err
}

func (r *PaymentRecordPostgresRepository) ListByJobID(ctx context.Context, jobID string) ([]entities.PaymentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payment_records WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []entities.PaymentRecord{}
	for rows.Next() {
		p, err := scanPaymentRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func scanPaymentRecord(row rowScanner) (entities.PaymentRecord, error) {
	var p entities.PaymentRecord
	var paidAt sql.NullTime
	err := row.Scan(&p.ID, &p.JobID, &p.SessionID, &p.AmountCents, &p.Status, &p.CardSaved, &paidAt, &p.CreatedAt)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if paidAt.Valid {
		t := paidAt.Time
		p.PaidAt = &t
	}
	return p, nil
}
