package usecase

import (
	"context"
	"errors"
	"testing"

	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase/interfaces"
	mock_interfaces "invoicely/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func ownerAuth() AuthContext {
	return AuthContext{UserID: "user-1", Email: "owner@acme.test", CompanyID: "co-1", Role: entities.RoleOwner}
}

func testConnectConfig() ConnectConfig {
	return ConnectConfig{
		RefreshURL: "https://app.example.com/connect/refresh",
		ReturnURL:  "https://app.example.com/connect/return",
	}
}

func TestCreateOnboardingLink_OwnerOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mock_interfaces.NewMockIProfileRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

	uc := NewConnectUseCase(profiles, gateway, testConnectConfig(), testLogger())

	profiles.EXPECT().GetByUserID(gomock.Any(), "user-2").Return(entities.CompanyProfile{
		UserID: "user-2", CompanyID: "co-1", Role: entities.RoleTeammate,
	}, nil)

	auth := AuthContext{UserID: "user-2", CompanyID: "co-1", Role: entities.RoleTeammate}
	_, err := uc.CreateOnboardingLink(context.Background(), auth)
	if !errors.Is(err, ErrNotCompanyOwner) {
		t.Fatalf("expected ErrNotCompanyOwner, got %v", err)
	}
}

func TestCreateOnboardingLink_CreatesAccountOnFirstUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mock_interfaces.NewMockIProfileRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

	uc := NewConnectUseCase(profiles, gateway, testConnectConfig(), testLogger())

	profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(entities.CompanyProfile{
		UserID: "user-1", Email: "owner@acme.test", CompanyID: "co-1", Role: entities.RoleOwner,
	}, nil)
	gateway.EXPECT().CreateAccount(gomock.Any(), "owner@acme.test").Return("acct_new", nil)
	profiles.EXPECT().UpdateStripeAccount(gomock.Any(), "user-1", "acct_new", false).
		Return(entities.CompanyProfile{}, nil)
	gateway.EXPECT().CreateAccountLink(gomock.Any(), "acct_new", "https://app.example.com/connect/refresh", "https://app.example.com/connect/return").
		Return("https://connect.example.com/onboard/acct_new", nil)

	link, err := uc.CreateOnboardingLink(context.Background(), ownerAuth())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link.AccountID != "acct_new" {
		t.Errorf("expected account acct_new, got %q", link.AccountID)
	}
	if link.URL != "https://connect.example.com/onboard/acct_new" {
		t.Errorf("unexpected url %q", link.URL)
	}
}

func TestCreateOnboardingLink_ReusesExistingAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mock_interfaces.NewMockIProfileRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

	uc := NewConnectUseCase(profiles, gateway, testConnectConfig(), testLogger())

	profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(entities.CompanyProfile{
		UserID: "user-1", CompanyID: "co-1", Role: entities.RoleOwner, StripeAccountID: "acct_old",
	}, nil)
	gateway.EXPECT().CreateAccountLink(gomock.Any(), "acct_old", gomock.Any(), gomock.Any()).
		Return("https://connect.example.com/onboard/acct_old", nil)

	link, err := uc.CreateOnboardingLink(context.Background(), ownerAuth())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link.AccountID != "acct_old" {
		t.Errorf("expected account acct_old, got %q", link.AccountID)
	}
}

func TestCreateOnboardingLink_MaterializesProfileFromClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mock_interfaces.NewMockIProfileRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

	uc := NewConnectUseCase(profiles, gateway, testConnectConfig(), testLogger())

	profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(entities.CompanyProfile{}, nil)
	profiles.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p entities.CompanyProfile) (entities.CompanyProfile, error) {
			if p.UserID != "user-1" || p.CompanyID != "co-1" || p.Role != entities.RoleOwner {
				t.Errorf("unexpected profile from claims: %+v", p)
			}
			return p, nil
		})
	gateway.EXPECT().CreateAccount(gomock.Any(), "owner@acme.test").Return("acct_new", nil)
	profiles.EXPECT().UpdateStripeAccount(gomock.Any(), "user-1", "acct_new", false).
		Return(entities.CompanyProfile{}, nil)
	gateway.EXPECT().CreateAccountLink(gomock.Any(), "acct_new", gomock.Any(), gomock.Any()).
		Return("https://connect.example.com/onboard/acct_new", nil)

	if _, err := uc.CreateOnboardingLink(context.Background(), ownerAuth()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckAccountStatus_NoAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mock_interfaces.NewMockIProfileRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

	uc := NewConnectUseCase(profiles, gateway, testConnectConfig(), testLogger())

	profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(entities.CompanyProfile{
		UserID: "user-1", CompanyID: "co-1", Role: entities.RoleOwner,
	}, nil)

	res, err := uc.CheckAccountStatus(context.Background(), ownerAuth())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Connected || res.AccountID != "" {
		t.Errorf("expected not connected, got %+v", res)
	}
}

func TestCheckAccountStatus_PersistsTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mock_interfaces.NewMockIProfileRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

	uc := NewConnectUseCase(profiles, gateway, testConnectConfig(), testLogger())

	profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(entities.CompanyProfile{
		UserID: "user-1", CompanyID: "co-1", Role: entities.RoleOwner,
		StripeAccountID: "acct_X", StripeConnected: false,
	}, nil)
	gateway.EXPECT().GetAccountStatus(gomock.Any(), "acct_X").Return(interfaces.AccountStatus{
		ChargesEnabled: true, PayoutsEnabled: true, DetailsSubmitted: true,
	}, nil)
	profiles.EXPECT().UpdateStripeAccount(gomock.Any(), "user-1", "acct_X", true).
		Return(entities.CompanyProfile{}, nil)

	res, err := uc.CheckAccountStatus(context.Background(), ownerAuth())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Connected || res.AccountID != "acct_X" {
		t.Errorf("expected connected acct_X, got %+v", res)
	}
}

func TestCheckAccountStatus_UnchangedFlagSkipsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mock_interfaces.NewMockIProfileRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

	uc := NewConnectUseCase(profiles, gateway, testConnectConfig(), testLogger())

	profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(entities.CompanyProfile{
		UserID: "user-1", CompanyID: "co-1", Role: entities.RoleOwner,
		StripeAccountID: "acct_X", StripeConnected: true,
	}, nil)
	gateway.EXPECT().GetAccountStatus(gomock.Any(), "acct_X").Return(interfaces.AccountStatus{
		ChargesEnabled: true, PayoutsEnabled: true,
	}, nil)

	res, err := uc.CheckAccountStatus(context.Background(), ownerAuth())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Connected {
		t.Error("expected connected to stay true")
	}
}

func TestCheckAccountStatus_PartialCapabilitiesNotConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mock_interfaces.NewMockIProfileRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

	uc := NewConnectUseCase(profiles, gateway, testConnectConfig(), testLogger())

	profiles.EXPECT().GetByUserID(gomock.Any(), "user-1").Return(entities.CompanyProfile{
		UserID: "user-1", CompanyID: "co-1", Role: entities.RoleOwner,
		StripeAccountID: "acct_X", StripeConnected: false,
	}, nil)
	gateway.EXPECT().GetAccountStatus(gomock.Any(), "acct_X").Return(interfaces.AccountStatus{
		ChargesEnabled: true, PayoutsEnabled: false,
	}, nil)

	res, err := uc.CheckAccountStatus(context.Background(), ownerAuth())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Connected {
		t.Error("expected not connected while payouts are disabled")
	}
}
