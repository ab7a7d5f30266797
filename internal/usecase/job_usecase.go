package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidCompanyID      = errors.New("invalid company id")
	ErrInvalidJobName        = errors.New("invalid job name")
	ErrCheckoutAlreadyIssued = errors.New("price is immutable once a checkout link has been issued")
	ErrJobNotPaid            = errors.New("job is not paid")
)

// JobInput is the creation payload after boundary validation.
type JobInput struct {
	Name       string
	ClientName string
	PriceCents int64
}

// IJobUseCase exposes the dashboard's job operations. Every operation is
// tenant-checked against the caller's company id.

type IJobUseCase interface {
	Create(ctx context.Context, companyID string, in JobInput) (entities.Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]entities.Job, error)
	GetByID(ctx context.Context, companyID, jobID string) (entities.Job, error)
	UpdatePrice(ctx context.Context, companyID, jobID string, priceCents int64) (entities.Job, error)
	MarkPaid(ctx context.Context, companyID, jobID string) (entities.Job, error)
	Complete(ctx context.Context, companyID, jobID string) (entities.Job, error)
	ListPayments(ctx context.Context, companyID, jobID string) ([]entities.PaymentRecord, error)
}

type JobUseCase struct {
	jobs     interfaces.IJobRepository
	payments interfaces.IPaymentRecordRepository
	log      *slog.Logger
}

var _ IJobUseCase = (*JobUseCase)(nil)

func NewJobUseCase(jobs interfaces.IJobRepository, payments interfaces.IPaymentRecordRepository, log *slog.Logger) *JobUseCase {
	return &JobUseCase{jobs: jobs, payments: payments, log: log}
}

func (u *JobUseCase) Create(ctx context.Context, companyID string, in JobInput) (entities.Job, error) {
	if strings.TrimSpace(companyID) == "" {
		return entities.Job{}, ErrInvalidCompanyID
	}
	if strings.TrimSpace(in.Name) == "" {
		return entities.Job{}, ErrInvalidJobName
	}
	if in.PriceCents <= 0 {
		return entities.Job{}, ErrInvalidJobPrice
	}

	now := time.Now().UTC()
	j := entities.Job{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		Name:       strings.TrimSpace(in.Name),
		ClientName: strings.TrimSpace(in.ClientName),
		PriceCents: in.PriceCents,
		Status:     entities.JobStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return u.jobs.Create(ctx, j)
}

func (u *JobUseCase) ListByCompany(ctx context.Context, companyID string) ([]entities.Job, error) {
	return u.jobs.ListByCompanyID(ctx, companyID)
}

func (u *JobUseCase) GetByID(ctx context.Context, companyID, jobID string) (entities.Job, error) {
	return u.getOwned(ctx, companyID, jobID)
}

// UpdatePrice reprices a pending job. Once a checkout link exists the price
// is frozen: the issued session already carries the old amount.
func (u *JobUseCase) UpdatePrice(ctx context.Context, companyID, jobID string, priceCents int64) (entities.Job, error) {
	if priceCents <= 0 {
		return entities.Job{}, ErrInvalidJobPrice
	}

	job, err := u.getOwned(ctx, companyID, jobID)
	if err != nil {
		return entities.Job{}, err
	}
	if job.PaymentURL != "" {
		return entities.Job{}, ErrCheckoutAlreadyIssued
	}

	return u.jobs.UpdatePrice(ctx, job.ID, priceCents)
}

// MarkPaid is the manual override path. It writes the same ledger row the
// webhook reconciler would, keyed "manual:<job id>" so the uniqueness
// constraint covers both writers. Marking an already-paid job is a no-op.
func (u *JobUseCase) MarkPaid(ctx context.Context, companyID, jobID string) (entities.Job, error) {
	job, err := u.getOwned(ctx, companyID, jobID)
	if err != nil {
		return entities.Job{}, err
	}
	if job.Status == entities.JobStatusPaid || job.Status == entities.JobStatusCompleted {
		return job, nil
	}

	now := time.Now().UTC()
	record := entities.PaymentRecord{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		SessionID:   fmt.Sprintf("manual:%s", job.ID),
		AmountCents: job.PriceCents,
		Status:      entities.PaymentStatusPaid,
		PaidAt:      &now,
	}
	if _, err := u.payments.Create(ctx, record); err != nil && !errors.Is(err, interfaces.ErrDuplicatePayment) {
		return entities.Job{}, err
	}

	updated, err := u.jobs.MarkPaid(ctx, job.ID, now)
	if err != nil {
		return entities.Job{}, err
	}
	u.log.Info("job manually marked paid", "job_id", job.ID, "company_id", companyID)
	return updated, nil
}

func (u *JobUseCase) Complete(ctx context.Context, companyID, jobID string) (entities.Job, error) {
	job, err := u.getOwned(ctx, companyID, jobID)
	if err != nil {
		return entities.Job{}, err
	}
	if job.Status != entities.JobStatusPaid {
		return entities.Job{}, ErrJobNotPaid
	}
	return u.jobs.MarkCompleted(ctx, job.ID)
}

func (u *JobUseCase) ListPayments(ctx context.Context, companyID, jobID string) ([]entities.PaymentRecord, error) {
	job, err := u.getOwned(ctx, companyID, jobID)
	if err != nil {
		return nil, err
	}
	return u.payments.ListByJobID(ctx, job.ID)
}

// getOwned fetches a job and hides it from other tenants: a job owned by a
// different company reads as not found.
func (u *JobUseCase) getOwned(ctx context.Context, companyID, jobID string) (entities.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return entities.Job{}, ErrInvalidJobID
	}

	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return entities.Job{}, err
	}
	if job.ID == "" || job.CompanyID != companyID {
		return entities.Job{}, ErrJobNotFound
	}
	return job, nil
}
