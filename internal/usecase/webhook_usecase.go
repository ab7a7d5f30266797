package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrMissingJobReference = errors.New("event metadata has no job id")

// IWebhookUseCase consumes asynchronous payment-completion notifications.

type IWebhookUseCase interface {
	HandleEvent(ctx context.Context, payload []byte, signatureHeader string) error
}

type WebhookUseCase struct {
	jobs     interfaces.IJobRepository
	payments interfaces.IPaymentRecordRepository
	gateway  interfaces.IPaymentGateway
	log      *slog.Logger
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(jobs interfaces.IJobRepository, payments interfaces.IPaymentRecordRepository, gateway interfaces.IPaymentGateway, log *slog.Logger) *WebhookUseCase {
	return &WebhookUseCase{jobs: jobs, payments: payments, gateway: gateway, log: log}
}

// HandleEvent verifies the notification signature, then transitions the job
// to paid exactly once per completed checkout.
//
// The ledger row is inserted before the job transition so a paid job always
// has its paid record, and the uniqueness constraint on the session id makes
// processor re-delivery a no-op rather than a double credit.
func (u *WebhookUseCase) HandleEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	if u.gateway == nil {
		return interfaces.ErrGatewayNotConfigured
	}

	evt, err := u.gateway.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		u.log.Warn("webhook rejected", "err", err)
		return err
	}

	if evt.Type != interfaces.EventCheckoutCompleted {
		u.log.Debug("ignoring webhook event", "event_id", evt.ID, "type", evt.Type)
		return nil
	}

	jobID := strings.TrimSpace(evt.Metadata["job_id"])
	if jobID == "" {
		u.log.Warn("completed checkout carries no job id", "event_id", evt.ID, "session_id", evt.SessionID)
		return ErrMissingJobReference
	}

	// Fast path for replays; the uniqueness constraint below is still the
	// authority under concurrent delivery.
	if existing, err := u.payments.GetBySessionID(ctx, evt.SessionID); err != nil {
		return err
	} else if existing.ID != "" {
		u.log.Info("webhook replay, already reconciled", "event_id", evt.ID, "session_id", evt.SessionID)
		return nil
	}

	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.ID == "" {
		return ErrJobNotFound
	}

	now := time.Now().UTC()
	record := entities.PaymentRecord{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		SessionID:   evt.SessionID,
		AmountCents: evt.AmountTotal,
		Status:      entities.PaymentStatusPaid,
		CardSaved:   evt.CardSaved,
		PaidAt:      &now,
	}

	if _, err := u.payments.Create(ctx, record); err != nil {
		if errors.Is(err, interfaces.ErrDuplicatePayment) {
			u.log.Info("webhook replay, ledger row already exists", "event_id", evt.ID, "session_id", evt.SessionID, "job_id", job.ID)
			return nil
		}
		return err
	}

	if _, err := u.jobs.MarkPaid(ctx, job.ID, now); err != nil {
		return err
	}

	u.log.Info("job reconciled as paid", "event_id", evt.ID, "session_id", evt.SessionID, "job_id", job.ID, "amount_cents", evt.AmountTotal)
	return nil
}
