package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"invoicely/internal/adapter/http/handlers/mocks"
	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func sampleJob() entities.Job {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return entities.Job{
		ID:         "job-1",
		CompanyID:  "co-1",
		Name:       "Deck repair",
		ClientName: "Acme",
		PriceCents: 25000,
		Status:     entities.JobStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func authedJSONContext(t *testing.T, method, path, body string, auth usecase.AuthContext) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("authContext", auth)
	return c, w
}

func TestCreateJob(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobUseCase(ctrl)
		h := NewJobHandler(uc)

		uc.EXPECT().Create(gomock.Any(), "co-1", usecase.JobInput{
			Name: "Deck repair", ClientName: "Acme", PriceCents: 25000,
		}).Return(sampleJob(), nil)

		c, w := authedJSONContext(t, http.MethodPost, "/v1/jobs",
			`{"name":"Deck repair","client_name":"Acme","price":"250.00"}`, testAuth())
		h.CreateJob(c)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		job, _ := body["job"].(map[string]any)
		if job == nil || job["id"] != "job-1" || job["price"] != "250.00" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("malformed price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobUseCase(ctrl)
		h := NewJobHandler(uc)

		c, w := authedJSONContext(t, http.MethodPost, "/v1/jobs",
			`{"name":"Deck repair","price":"abc"}`, testAuth())
		h.CreateJob(c)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["code"] != "INVALID_PRICE" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("blank company id maps to bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobUseCase(ctrl)
		h := NewJobHandler(uc)

		uc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.Job{}, usecase.ErrInvalidCompanyID)

		c, w := authedJSONContext(t, http.MethodPost, "/v1/jobs",
			`{"name":"Deck repair","price":"10.00"}`, testAuth())
		h.CreateJob(c)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["code"] != "INVALID_REQUEST" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobUseCase(ctrl)
		h := NewJobHandler(uc)

		c, w := authedJSONContext(t, http.MethodPost, "/v1/jobs", `{"price":"10.00"}`, testAuth())
		h.CreateJob(c)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestListJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIJobUseCase(ctrl)
	h := NewJobHandler(uc)

	uc.EXPECT().ListByCompany(gomock.Any(), "co-1").Return([]entities.Job{sampleJob()}, nil)

	c, w := authedJSONContext(t, http.MethodGet, "/v1/jobs", "", testAuth())
	h.ListJobs(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	jobs, _ := body["jobs"].([]any)
	if len(jobs) != 1 {
		t.Errorf("expected one job, got %v", body)
	}
}

func TestGetJob_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIJobUseCase(ctrl)
	h := NewJobHandler(uc)

	uc.EXPECT().GetByID(gomock.Any(), "co-1", "job-9").Return(entities.Job{}, usecase.ErrJobNotFound)

	c, w := authedJSONContext(t, http.MethodGet, "/v1/jobs/job-9", "", testAuth())
	c.Params = gin.Params{{Key: "id", Value: "job-9"}}
	h.GetJob(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["code"] != "JOB_NOT_FOUND" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestUpdatePrice_FrozenAfterCheckout(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIJobUseCase(ctrl)
	h := NewJobHandler(uc)

	uc.EXPECT().UpdatePrice(gomock.Any(), "co-1", "job-1", int64(30000)).
		Return(entities.Job{}, usecase.ErrCheckoutAlreadyIssued)

	c, w := authedJSONContext(t, http.MethodPatch, "/v1/jobs/job-1/price", `{"price":"300.00"}`, testAuth())
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	h.UpdatePrice(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["code"] != "CHECKOUT_ALREADY_ISSUED" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestMarkPaidEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIJobUseCase(ctrl)
	h := NewJobHandler(uc)

	paid := sampleJob()
	paid.Status = entities.JobStatusPaid
	uc.EXPECT().MarkPaid(gomock.Any(), "co-1", "job-1").Return(paid, nil)

	c, w := authedJSONContext(t, http.MethodPost, "/v1/jobs/job-1/mark-paid", "", testAuth())
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	h.MarkPaid(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	job, _ := body["job"].(map[string]any)
	if job == nil || job["status"] != string(entities.JobStatusPaid) {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestCompleteEndpoint_RequiresPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIJobUseCase(ctrl)
	h := NewJobHandler(uc)

	uc.EXPECT().Complete(gomock.Any(), "co-1", "job-1").Return(entities.Job{}, usecase.ErrJobNotPaid)

	c, w := authedJSONContext(t, http.MethodPost, "/v1/jobs/job-1/complete", "", testAuth())
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	h.Complete(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestListPaymentsEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIJobUseCase(ctrl)
	h := NewJobHandler(uc)

	uc.EXPECT().ListPayments(gomock.Any(), "co-1", "job-1").Return([]entities.PaymentRecord{
		{ID: "pr-1", JobID: "job-1", SessionID: "cs_1", AmountCents: 25000, Status: entities.PaymentStatusPaid},
	}, nil)

	c, w := authedJSONContext(t, http.MethodGet, "/v1/jobs/job-1/payments", "", testAuth())
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	h.ListPayments(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	payments, _ := body["payments"].([]any)
	if len(payments) != 1 {
		t.Errorf("expected one payment, got %v", body)
	}
}
