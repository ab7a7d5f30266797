package response

import "invoicely/internal/usecase"

// CheckoutResponse is the body of POST /create-checkout.
type CheckoutResponse struct {
	Success   bool   `json:"success"`
	URL       string `json:"url,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Routing   string `json:"routing,omitempty"`
	FeeCents  int64  `json:"fee_cents"`
	AmountDue int64  `json:"amount_due,omitempty"`
}

func FromCheckoutResult(r usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Success:   true,
		URL:       r.URL,
		SessionID: r.SessionID,
		Routing:   r.Routing,
		FeeCents:  r.FeeCents,
		AmountDue: r.AmountDue,
	}
}
