package interfaces

import (
	"context"

	"invoicely/internal/domain/entities"
)

// IProfileRepository abstracts Postgres persistence for CompanyProfile.
//
// The checkout path resolves the transfer destination through the company
// owner's profile; onboarding operates on the caller's own profile.

type IProfileRepository interface {
	Create(ctx context.Context, p entities.CompanyProfile) (entities.CompanyProfile, error)
	GetByUserID(ctx context.Context, userID string) (entities.CompanyProfile, error)
	GetOwnerByCompanyID(ctx context.Context, companyID string) (entities.CompanyProfile, error)
	UpdateStripeAccount(ctx context.Context, userID, accountID string, connected bool) (entities.CompanyProfile, error)
}
