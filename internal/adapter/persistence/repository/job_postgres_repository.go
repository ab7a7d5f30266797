package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase/interfaces"
)

// JobPostgresRepository persists Job entities.
//
// Not-found is reported as a zero-value Job with a nil error, matching the
// usecase convention of checking ID == "".

type JobPostgresRepository struct {
	db *sql.DB
}

var _ interfaces.IJobRepository = (*JobPostgresRepository)(nil)

func NewJobPostgresRepository(db *sql.DB) *JobPostgresRepository {
	return &JobPostgresRepository{db: db}
}

const jobColumns = `id, company_id, name, client_name, price_cents, status, payment_url, paid_at, created_at, updated_at`

func (r *JobPostgresRepository) Create(ctx context.Context, j entities.Job) (entities.Job, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO jobs (id, company_id, name, client_name, price_cents, status, payment_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID, j.CompanyID, j.Name, j.ClientName, j.PriceCents, j.Status, j.PaymentURL, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return entities.Job{}, err
	}
	return j, nil
}

func (r *JobPostgresRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Job{}, nil
	}
	return j, err
}

func (r *JobPostgresRepository) ListByCompanyID(ctx context.Context, companyID string) ([]entities.Job, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []entities.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobPostgresRepository) UpdatePaymentURL(ctx context.Context, id, url string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET payment_url = $2, updated_at = now() WHERE id = $1`, id, url)
	return err
}

func (r *JobPostgresRepository) UpdatePrice(ctx context.Context, id string, priceCents int64) (entities.Job, error) {
	return r.updateReturning(ctx, `
		UPDATE jobs SET price_cents = $2, updated_at = now() WHERE id = $1
		RETURNING `+jobColumns, id, priceCents)
}

func (r *JobPostgresRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.Job, error) {
	return r.updateReturning(ctx, `
		UPDATE jobs SET status = 'paid', paid_at = $2, updated_at = now() WHERE id = $1
		RETURNING `+jobColumns, id, paidAt)
}

func (r *JobPostgresRepository) MarkCompleted(ctx context.Context, id string) (entities.Job, error) {
	return r.updateReturning(ctx, `
		UPDATE jobs SET status = 'completed', updated_at = now() WHERE id = $1
		RETURNING `+jobColumns, id)
}

func (r *JobPostgresRepository) updateReturning(ctx context.Context, query string, args ...any) (entities.Job, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Job{}, nil
	}
	return j, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (entities.Job, error) {
	var j entities.Job
	var paymentURL sql.NullString
	var paidAt sql.NullTime
	err := row.Scan(&j.ID, &j.CompanyID, &j.Name, &j.ClientName, &j.PriceCents, &j.Status,
		&paymentURL, &paidAt, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return entities.Job{}, err
	}
	if paymentURL.Valid {
		j.PaymentURL = paymentURL.String
	}
	if paidAt.Valid {
		t := paidAt.Time
		j.PaidAt = &t
	}
	return j, nil
}
