package response

import "invoicely/internal/usecase"

// ConnectResponse is the body of POST /stripe-connect.
type ConnectResponse struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	AccountID string `json:"account_id"`
}

func FromOnboardingLink(l usecase.OnboardingLink) ConnectResponse {
	return ConnectResponse{Success: true, URL: l.URL, AccountID: l.AccountID}
}

// AccountStatusResponse is the body of GET /check-stripe-status.
type AccountStatusResponse struct {
	Success   bool   `json:"success"`
	Connected bool   `json:"connected"`
	AccountID string `json:"account_id,omitempty"`
}

func FromAccountStatus(s usecase.AccountStatusResult) AccountStatusResponse {
	return AccountStatusResponse{Success: true, Connected: s.Connected, AccountID: s.AccountID}
}
