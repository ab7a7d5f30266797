package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"invoicely/internal/config"
	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase/interfaces"
)

var (
	ErrInvalidJobID      = errors.New("invalid job id")
	ErrJobNotFound       = errors.New("job not found")
	ErrInvalidJobPrice   = errors.New("job price is missing or not positive")
	ErrPriceBelowMinimum = errors.New("job price is below the processor minimum")
)

// Routing method recorded on every checkout session.
const (
	RoutingPlatformOnly = "platform_only"
	RoutingConnected    = "connected"
)

// CheckoutConfig pins the deployment decisions the session builder depends
// on. FeePolicy decides whether the customer pays price+fee (on_top) or the
// fee comes out of the price (absorbed).
type CheckoutConfig struct {
	PlatformAccountID string
	FeeBasisPoints    int64
	FeePolicy         string
	MinimumCents      int64
	Currency          string
	SuccessURL        string
	CancelURL         string
}

// CheckoutResult is what the create-checkout endpoint reports back.
type CheckoutResult struct {
	SessionID  string
	URL        string
	Routing    string
	AmountDue  int64
	FeeCents   int64
	Reattached bool // true when the session was re-created in platform-only mode
}

// ICheckoutUseCase turns a job id into a hosted payment-collection link.

type ICheckoutUseCase interface {
	CreateCheckoutSession(ctx context.Context, jobID string) (CheckoutResult, error)
}

type CheckoutUseCase struct {
	jobs     interfaces.IJobRepository
	profiles interfaces.IProfileRepository
	gateway  interfaces.IPaymentGateway
	cfg      CheckoutConfig
	log      *slog.Logger
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(jobs interfaces.IJobRepository, profiles interfaces.IProfileRepository, gateway interfaces.IPaymentGateway, cfg CheckoutConfig, log *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{jobs: jobs, profiles: profiles, gateway: gateway, cfg: cfg, log: log}
}

// CreateCheckoutSession resolves price and routing for the job, creates the
// hosted session and persists the resulting URL on the job.
//
// Routing: a verified connected account that is not the platform's own
// account receives the transfer and the platform takes its fee; anything
// else bills platform-only at the plain job price. If the processor still
// rejects the transfer as a self-transfer, the session is re-created once in
// platform-only mode instead of failing the call.
func (u *CheckoutUseCase) CreateCheckoutSession(ctx context.Context, jobID string) (CheckoutResult, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return CheckoutResult{}, ErrInvalidJobID
	}
	if u.gateway == nil {
		return CheckoutResult{}, interfaces.ErrGatewayNotConfigured
	}

	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if job.ID == "" {
		return CheckoutResult{}, ErrJobNotFound
	}
	if job.PriceCents <= 0 {
		return CheckoutResult{}, ErrInvalidJobPrice
	}
	if job.PriceCents < u.cfg.MinimumCents {
		u.log.Info("checkout rejected below minimum", "job_id", job.ID, "price_cents", job.PriceCents, "minimum_cents", u.cfg.MinimumCents)
		return CheckoutResult{}, ErrPriceBelowMinimum
	}

	destination, err := u.resolveDestination(ctx, job)
	if err != nil {
		return CheckoutResult{}, err
	}

	fee := int64(0)
	amountDue := job.PriceCents
	routing := RoutingPlatformOnly
	if destination != "" {
		routing = RoutingConnected
		fee = job.PriceCents * u.cfg.FeeBasisPoints / 10000
		if u.cfg.FeePolicy == config.FeePolicyOnTop {
			amountDue = job.PriceCents + fee
		}
	}

	req := u.buildSessionRequest(job, destination, amountDue, fee, routing)

	u.log.Info("creating checkout session", "job_id", job.ID, "routing", routing, "amount_due", amountDue, "fee_cents", fee, "destination", destination)
	sess, err := u.gateway.CreateCheckoutSession(ctx, req)

	reattached := false
	if err != nil && destination != "" && errors.Is(err, interfaces.ErrSelfTransfer) {
		// The local guard should have caught this; the processor knows best.
		// Strip transfer and fee and try once more.
		u.log.Warn("processor rejected self-transfer, retrying platform-only", "job_id", job.ID, "destination", destination)
		routing = RoutingPlatformOnly
		fee = 0
		amountDue = job.PriceCents
		req = u.buildSessionRequest(job, "", amountDue, 0, routing)
		sess, err = u.gateway.CreateCheckoutSession(ctx, req)
		reattached = true
	}
	if err != nil {
		u.log.Error("checkout session creation failed", "job_id", job.ID, "err", err)
		return CheckoutResult{}, err
	}

	// The link is already valid; losing the stored copy is not worth failing
	// the call over.
	if perr := u.jobs.UpdatePaymentURL(ctx, job.ID, sess.URL); perr != nil {
		u.log.Error("failed persisting checkout url", "job_id", job.ID, "session_id", sess.ID, "err", perr)
	}

	u.log.Info("checkout session created", "job_id", job.ID, "session_id", sess.ID, "routing", routing)
	return CheckoutResult{
		SessionID:  sess.ID,
		URL:        sess.URL,
		Routing:    routing,
		AmountDue:  amountDue,
		FeeCents:   fee,
		Reattached: reattached,
	}, nil
}

// resolveDestination returns the connected account to transfer to, or ""
// for platform-only billing. A missing or unverified owner profile is not an
// error, the job is simply billed without a transfer. A profile store failure
// is surfaced: guessing platform-only here would misroute the charge.
func (u *CheckoutUseCase) resolveDestination(ctx context.Context, job entities.Job) (string, error) {
	owner, err := u.profiles.GetOwnerByCompanyID(ctx, job.CompanyID)
	if err != nil {
		u.log.Error("owner profile lookup failed", "job_id", job.ID, "company_id", job.CompanyID, "err", err)
		return "", err
	}
	if owner.StripeAccountID == "" || !owner.StripeConnected {
		return "", nil
	}
	if owner.StripeAccountID == u.cfg.PlatformAccountID {
		u.log.Warn("connected account equals platform account, billing platform-only", "company_id", job.CompanyID, "account_id", owner.StripeAccountID)
		return "", nil
	}
	return owner.StripeAccountID, nil
}

func (u *CheckoutUseCase) buildSessionRequest(job entities.Job, destination string, amountDue, fee int64, routing string) interfaces.CheckoutSessionRequest {
	return interfaces.CheckoutSessionRequest{
		JobID:           job.ID,
		JobName:         job.Name,
		ClientName:      job.ClientName,
		UnitAmountCents: amountDue,
		Currency:        u.cfg.Currency,
		ApplicationFee:  fee,
		Destination:     destination,
		SuccessURL:      u.cfg.SuccessURL,
		CancelURL:       u.cfg.CancelURL,
		Metadata: map[string]string{
			"job_id":      job.ID,
			"client_name": job.ClientName,
			"job_price":   fmt.Sprintf("%d", job.PriceCents),
			"fee_amount":  fmt.Sprintf("%d", fee),
			"routing":     routing,
			"company_id":  job.CompanyID,
		},
	}
}
