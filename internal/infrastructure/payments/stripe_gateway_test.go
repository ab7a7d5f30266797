package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"invoicely/internal/usecase/interfaces"

	stripe "github.com/stripe/stripe-go/v76"
)

const testWebhookSecret = "whsec_test"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signPayload produces the signature header scheme the processor uses:
// t=<unix ts>,v1=<hex hmac_sha256(secret, "<ts>.<payload>")>.
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedEventPayload(sessionJSON string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"api_version": %q,
		"data": {"object": %s}
	}`, stripe.APIVersion, sessionJSON))
}

func testGateway(t *testing.T) *StripeGateway {
	t.Helper()
	g, err := NewStripeGateway("sk_test_123", testWebhookSecret, testLogger())
	if err != nil {
		t.Fatalf("constructing gateway: %v", err)
	}
	return g
}

func TestNewStripeGateway_RequiresSecretKey(t *testing.T) {
	_, err := NewStripeGateway("", testWebhookSecret, testLogger())
	if !errors.Is(err, ErrMissingStripeSecretKey) {
		t.Fatalf("expected ErrMissingStripeSecretKey, got %v", err)
	}
}

func TestVerifyWebhook_ValidSignature(t *testing.T) {
	g := testGateway(t)

	payload := completedEventPayload(`{
		"id": "cs_1",
		"amount_total": 10500,
		"metadata": {"job_id": "job-1", "routing": "connected"},
		"setup_intent": "seti_1"
	}`)
	header := signPayload(payload, testWebhookSecret, time.Now())

	evt, err := g.VerifyWebhook(payload, header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evt.Type != interfaces.EventCheckoutCompleted {
		t.Errorf("unexpected type %q", evt.Type)
	}
	if evt.SessionID != "cs_1" || evt.AmountTotal != 10500 {
		t.Errorf("unexpected event: %+v", evt)
	}
	if evt.Metadata["job_id"] != "job-1" {
		t.Errorf("unexpected metadata: %v", evt.Metadata)
	}
	if !evt.CardSaved {
		t.Error("expected card saved when a setup intent is attached")
	}
}

func TestVerifyWebhook_RejectsBadSignature(t *testing.T) {
	g := testGateway(t)

	payload := completedEventPayload(`{"id": "cs_1"}`)
	header := signPayload(payload, "whsec_other", time.Now())

	_, err := g.VerifyWebhook(payload, header)
	if !errors.Is(err, interfaces.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyWebhook_RejectsTamperedPayload(t *testing.T) {
	g := testGateway(t)

	payload := completedEventPayload(`{"id": "cs_1", "amount_total": 10500}`)
	header := signPayload(payload, testWebhookSecret, time.Now())
	tampered := completedEventPayload(`{"id": "cs_1", "amount_total": 1}`)

	_, err := g.VerifyWebhook(tampered, header)
	if !errors.Is(err, interfaces.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyWebhook_OtherEventTypesPassThrough(t *testing.T) {
	g := testGateway(t)

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_2",
		"type": "payment_intent.created",
		"api_version": %q,
		"data": {"object": {"id": "pi_1"}}
	}`, stripe.APIVersion))
	header := signPayload(payload, testWebhookSecret, time.Now())

	evt, err := g.VerifyWebhook(payload, header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evt.Type != "payment_intent.created" || evt.SessionID != "" {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestVerifyWebhook_MissingSessionIDFailsClosed(t *testing.T) {
	g := testGateway(t)

	payload := completedEventPayload(`{"amount_total": 10500}`)
	header := signPayload(payload, testWebhookSecret, time.Now())

	if _, err := g.VerifyWebhook(payload, header); err == nil {
		t.Fatal("expected an error for a completed event without a session id")
	}
}

func TestVerifyWebhook_MissingSecret(t *testing.T) {
	g, err := NewStripeGateway("sk_test_123", "", testLogger())
	if err != nil {
		t.Fatalf("constructing gateway: %v", err)
	}

	_, err = g.VerifyWebhook([]byte(`{}`), "t=1,v1=abc")
	if !errors.Is(err, interfaces.ErrGatewayNotConfigured) {
		t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
	}
}

func TestClassifyStripeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			"self transfer",
			&stripe.Error{Msg: "Cannot create a transfer to your own account", HTTPStatusCode: 400},
			interfaces.ErrSelfTransfer,
		},
		{
			"unauthorized",
			&stripe.Error{Msg: "Invalid API Key provided", HTTPStatusCode: 401},
			interfaces.ErrGatewayUnauthorized,
		},
		{
			"bad request",
			&stripe.Error{Msg: "Missing required param", HTTPStatusCode: 400},
			interfaces.ErrGatewayBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyStripeError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("non stripe errors pass through", func(t *testing.T) {
		plain := errors.New("network down")
		if got := classifyStripeError(plain); got != plain {
			t.Errorf("expected error unchanged, got %v", got)
		}
	})
}
