package interfaces

import (
	"context"
	"errors"
)

// Gateway sentinel errors. The concrete gateway classifies raw processor
// errors into these so usecases can branch without string matching.
var (
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrGatewayUnauthorized  = errors.New("payment gateway unauthorized")
	ErrGatewayBadRequest    = errors.New("payment gateway bad request")
	ErrSelfTransfer         = errors.New("transfer destination is the platform account")
	ErrInvalidSignature     = errors.New("webhook signature verification failed")
)

// CheckoutSessionRequest describes one hosted checkout session.
//
// Destination empty means platform-only billing: no transfer, no application
// fee. UnitAmountCents is what the customer is charged, which may differ from
// the job price depending on the fee policy.
type CheckoutSessionRequest struct {
	JobID           string
	JobName         string
	ClientName      string
	UnitAmountCents int64
	Currency        string
	ApplicationFee  int64
	Destination     string
	SuccessURL      string
	CancelURL       string
	Metadata        map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// AccountStatus is the processor's view of a connected sub-account.
type AccountStatus struct {
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
}

// WebhookEvent is the validated, narrowed form of a processor notification.
// Only the fields the reconciler consumes are surfaced; shape mismatches fail
// closed inside the gateway.
type WebhookEvent struct {
	ID          string
	Type        string
	SessionID   string
	AmountTotal int64
	CardSaved   bool
	Metadata    map[string]string
}

const EventCheckoutCompleted = "checkout.session.completed"

// IPaymentGateway abstracts the external payment processor (Stripe).

type IPaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)
	CreateAccount(ctx context.Context, email string) (accountID string, err error)
	CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (url string, err error)
	GetAccountStatus(ctx context.Context, accountID string) (AccountStatus, error)
	VerifyWebhook(payload []byte, signatureHeader string) (WebhookEvent, error)
}
