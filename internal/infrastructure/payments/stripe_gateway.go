package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"invoicely/internal/usecase/interfaces"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

// StripeGateway implements interfaces.IPaymentGateway on the Stripe API.
//
// The client is injected at construction time; nothing here reads globals or
// environment variables.

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	log           *slog.Logger
}

var _ interfaces.IPaymentGateway = (*StripeGateway)(nil)

func NewStripeGateway(secretKey, webhookSecret string, log *slog.Logger) (*StripeGateway, error) {
	if secretKey == "" {
		log.Error("stripe gateway missing secret key")
		return nil, ErrMissingStripeSecretKey
	}

	api := &client.API{}
	api.Init(secretKey, nil)
	log.Info("stripe client initialized")

	return &StripeGateway{api: api, webhookSecret: webhookSecret, log: log}, nil
}

// CreateCheckoutSession creates a hosted, payment-mode checkout session.
// When req.Destination is set, the charge transfers to the connected account
// and the application fee instruction is attached.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req interfaces.CheckoutSessionRequest) (interfaces.CheckoutSession, error) {
	if g == nil || g.api == nil {
		return interfaces.CheckoutSession{}, interfaces.ErrGatewayNotConfigured
	}

	description := fmt.Sprintf("Invoice for %s", req.ClientName)
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.UnitAmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.JobName),
						Description: stripe.String(description),
					},
				},
			},
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	if req.Destination != "" {
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(req.ApplicationFee),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(req.Destination),
			},
		}
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		g.log.Error("stripe session creation failed", "job_id", req.JobID, "err", err)
		return interfaces.CheckoutSession{}, classifyStripeError(err)
	}

	g.log.Info("stripe session created", "job_id", req.JobID, "session_id", sess.ID)
	return interfaces.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// CreateAccount creates an Express connected account able to receive card
// payments and transfers.
func (g *StripeGateway) CreateAccount(ctx context.Context, email string) (string, error) {
	if g == nil || g.api == nil {
		return "", interfaces.ErrGatewayNotConfigured
	}

	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
	}
	params.Context = ctx

	acct, err := g.api.Accounts.New(params)
	if err != nil {
		return "", classifyStripeError(err)
	}
	return acct.ID, nil
}

func (g *StripeGateway) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	if g == nil || g.api == nil {
		return "", interfaces.ErrGatewayNotConfigured
	}

	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := g.api.AccountLinks.New(params)
	if err != nil {
		return "", classifyStripeError(err)
	}
	return link.URL, nil
}

func (g *StripeGateway) GetAccountStatus(ctx context.Context, accountID string) (interfaces.AccountStatus, error) {
	if g == nil || g.api == nil {
		return interfaces.AccountStatus{}, interfaces.ErrGatewayNotConfigured
	}

	params := &stripe.AccountParams{}
	params.Context = ctx

	acct, err := g.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return interfaces.AccountStatus{}, classifyStripeError(err)
	}

	return interfaces.AccountStatus{
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}, nil
}

// VerifyWebhook authenticates the payload against the signing secret and
// narrows it to the fields the reconciler consumes. Anything that does not
// parse as expected fails closed.
func (g *StripeGateway) VerifyWebhook(payload []byte, signatureHeader string) (interfaces.WebhookEvent, error) {
	if g == nil || g.webhookSecret == "" {
		return interfaces.WebhookEvent{}, interfaces.ErrGatewayNotConfigured
	}

	event, err := webhook.ConstructEvent(payload, signatureHeader, g.webhookSecret)
	if err != nil {
		return interfaces.WebhookEvent{}, fmt.Errorf("%w: %s", interfaces.ErrInvalidSignature, err)
	}

	out := interfaces.WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if out.Type != interfaces.EventCheckoutCompleted {
		return out, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return interfaces.WebhookEvent{}, fmt.Errorf("malformed checkout.session.completed payload: %w", err)
	}
	if sess.ID == "" {
		return interfaces.WebhookEvent{}, errors.New("checkout.session.completed payload has no session id")
	}

	out.SessionID = sess.ID
	out.AmountTotal = sess.AmountTotal
	out.Metadata = sess.Metadata
	out.CardSaved = sess.SetupIntent != nil

	return out, nil
}

// classifyStripeError maps raw API errors onto the gateway sentinels.
func classifyStripeError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return err
	}

	msg := strings.ToLower(stripeErr.Msg)
	switch {
	case strings.Contains(msg, "your own account") || strings.Contains(msg, "themselves"):
		return fmt.Errorf("%w: %s", interfaces.ErrSelfTransfer, stripeErr.Msg)
	case stripeErr.HTTPStatusCode == 401:
		return fmt.Errorf("%w: %s", interfaces.ErrGatewayUnauthorized, stripeErr.Msg)
	case stripeErr.HTTPStatusCode == 400:
		return fmt.Errorf("%w: %s", interfaces.ErrGatewayBadRequest, stripeErr.Msg)
	default:
		return err
	}
}
