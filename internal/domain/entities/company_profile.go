package entities

import "time"

// Role of a profile inside its company. Only owners may run processor
// onboarding.

type Role string

const (
	RoleOwner    Role = "owner"
	RoleTeammate Role = "teammate"
)

// CompanyProfile maps a platform user to its company (tenant) and, once the
// owner has completed processor onboarding, to the company's connected
// payment sub-account.
//
// StripeConnected is only set true after the processor reports the account as
// capable of accepting charges and payouts; it is refreshed on demand, never
// pushed.

type CompanyProfile struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	CompanyID string `json:"company_id"`
	Role      Role   `json:"role"`

	StripeAccountID string `json:"stripe_account_id,omitempty"`
	StripeConnected bool   `json:"stripe_connected"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
