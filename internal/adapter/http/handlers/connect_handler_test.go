package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"invoicely/internal/adapter/http/handlers/mocks"
	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func authedContext(t *testing.T, method, path string, auth usecase.AuthContext) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	c.Set("authContext", auth)
	return c, w
}

func testAuth() usecase.AuthContext {
	return usecase.AuthContext{UserID: "user-1", Email: "owner@acme.test", CompanyID: "co-1", Role: entities.RoleOwner}
}

func TestStartOnboarding_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIConnectUseCase(ctrl)
	h := NewConnectHandler(uc)

	uc.EXPECT().CreateOnboardingLink(gomock.Any(), testAuth()).Return(usecase.OnboardingLink{
		URL:       "https://connect.example.com/onboard/acct_1",
		AccountID: "acct_1",
	}, nil)

	c, w := authedContext(t, http.MethodPost, "/stripe-connect", testAuth())
	h.StartOnboarding(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["url"] != "https://connect.example.com/onboard/acct_1" || body["account_id"] != "acct_1" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestStartOnboarding_OwnerOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIConnectUseCase(ctrl)
	h := NewConnectHandler(uc)

	uc.EXPECT().CreateOnboardingLink(gomock.Any(), gomock.Any()).
		Return(usecase.OnboardingLink{}, usecase.ErrNotCompanyOwner)

	c, w := authedContext(t, http.MethodPost, "/stripe-connect", testAuth())
	h.StartOnboarding(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["code"] != "OWNER_ONLY" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestStartOnboarding_MissingAuthContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIConnectUseCase(ctrl)
	h := NewConnectHandler(uc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/stripe-connect", nil)
	h.StartOnboarding(c)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCheckStatus(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConnectUseCase(ctrl)
		h := NewConnectHandler(uc)

		uc.EXPECT().CheckAccountStatus(gomock.Any(), testAuth()).
			Return(usecase.AccountStatusResult{Connected: true, AccountID: "acct_1"}, nil)

		c, w := authedContext(t, http.MethodGet, "/check-stripe-status", testAuth())
		h.CheckStatus(c)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["connected"] != true || body["account_id"] != "acct_1" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("no account yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIConnectUseCase(ctrl)
		h := NewConnectHandler(uc)

		uc.EXPECT().CheckAccountStatus(gomock.Any(), testAuth()).
			Return(usecase.AccountStatusResult{Connected: false}, nil)

		c, w := authedContext(t, http.MethodGet, "/check-stripe-status", testAuth())
		h.CheckStatus(c)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["connected"] != false {
			t.Errorf("unexpected body: %v", body)
		}
	})
}
