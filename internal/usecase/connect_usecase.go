package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase/interfaces"
)

var ErrNotCompanyOwner = errors.New("only the company owner can manage the connected account")

// AuthContext carries the verified claims of the calling user.
type AuthContext struct {
	UserID    string
	Email     string
	CompanyID string
	Role      entities.Role
}

// ConnectConfig holds the onboarding redirect targets.
type ConnectConfig struct {
	RefreshURL string
	ReturnURL  string
}

type OnboardingLink struct {
	URL       string
	AccountID string
}

type AccountStatusResult struct {
	Connected bool
	AccountID string
}

// IConnectUseCase manages the company's connected payment sub-account.

type IConnectUseCase interface {
	CreateOnboardingLink(ctx context.Context, auth AuthContext) (OnboardingLink, error)
	CheckAccountStatus(ctx context.Context, auth AuthContext) (AccountStatusResult, error)
}

type ConnectUseCase struct {
	profiles interfaces.IProfileRepository
	gateway  interfaces.IPaymentGateway
	cfg      ConnectConfig
	log      *slog.Logger
}

var _ IConnectUseCase = (*ConnectUseCase)(nil)

func NewConnectUseCase(profiles interfaces.IProfileRepository, gateway interfaces.IPaymentGateway, cfg ConnectConfig, log *slog.Logger) *ConnectUseCase {
	return &ConnectUseCase{profiles: profiles, gateway: gateway, cfg: cfg, log: log}
}

// CreateOnboardingLink creates the processor sub-account on first use and
// returns a fresh onboarding link. The account id is stored immediately with
// connected=false; verification only happens through CheckAccountStatus.
func (u *ConnectUseCase) CreateOnboardingLink(ctx context.Context, auth AuthContext) (OnboardingLink, error) {
	if u.gateway == nil {
		return OnboardingLink{}, interfaces.ErrGatewayNotConfigured
	}

	profile, err := u.ensureProfile(ctx, auth)
	if err != nil {
		return OnboardingLink{}, err
	}
	if profile.Role != entities.RoleOwner {
		return OnboardingLink{}, ErrNotCompanyOwner
	}

	accountID := profile.StripeAccountID
	if accountID == "" {
		accountID, err = u.gateway.CreateAccount(ctx, profile.Email)
		if err != nil {
			u.log.Error("connected account creation failed", "user_id", auth.UserID, "err", err)
			return OnboardingLink{}, err
		}
		if _, err := u.profiles.UpdateStripeAccount(ctx, profile.UserID, accountID, false); err != nil {
			return OnboardingLink{}, err
		}
		u.log.Info("connected account created", "user_id", auth.UserID, "account_id", accountID)
	}

	url, err := u.gateway.CreateAccountLink(ctx, accountID, u.cfg.RefreshURL, u.cfg.ReturnURL)
	if err != nil {
		u.log.Error("account link creation failed", "account_id", accountID, "err", err)
		return OnboardingLink{}, err
	}

	return OnboardingLink{URL: url, AccountID: accountID}, nil
}

// CheckAccountStatus pulls the current capability state from the processor
// and persists a change of the connected flag. A profile without an account
// simply reports not connected.
func (u *ConnectUseCase) CheckAccountStatus(ctx context.Context, auth AuthContext) (AccountStatusResult, error) {
	profile, err := u.ensureProfile(ctx, auth)
	if err != nil {
		return AccountStatusResult{}, err
	}
	if profile.StripeAccountID == "" {
		return AccountStatusResult{Connected: false}, nil
	}
	if u.gateway == nil {
		return AccountStatusResult{}, interfaces.ErrGatewayNotConfigured
	}

	status, err := u.gateway.GetAccountStatus(ctx, profile.StripeAccountID)
	if err != nil {
		u.log.Error("account status lookup failed", "account_id", profile.StripeAccountID, "err", err)
		return AccountStatusResult{}, err
	}

	connected := status.ChargesEnabled && status.PayoutsEnabled
	if connected != profile.StripeConnected {
		if _, err := u.profiles.UpdateStripeAccount(ctx, profile.UserID, profile.StripeAccountID, connected); err != nil {
			return AccountStatusResult{}, err
		}
		u.log.Info("connected flag updated", "user_id", profile.UserID, "account_id", profile.StripeAccountID, "connected", connected)
	}

	return AccountStatusResult{Connected: connected, AccountID: profile.StripeAccountID}, nil
}

// ensureProfile implements create-at-first-authentication: the profile is
// materialized from verified claims the first time a user hits an
// authenticated endpoint.
func (u *ConnectUseCase) ensureProfile(ctx context.Context, auth AuthContext) (entities.CompanyProfile, error) {
	profile, err := u.profiles.GetByUserID(ctx, auth.UserID)
	if err != nil {
		return entities.CompanyProfile{}, err
	}
	if profile.UserID != "" {
		return profile, nil
	}

	now := time.Now().UTC()
	return u.profiles.Create(ctx, entities.CompanyProfile{
		UserID:    auth.UserID,
		Email:     auth.Email,
		CompanyID: auth.CompanyID,
		Role:      auth.Role,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
