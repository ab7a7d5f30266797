package handlers

import (
	"context"
	"errors"
	"net/http"

	"invoicely/internal/adapter/http/dto/request"
	"invoicely/internal/adapter/http/dto/response"
	"invoicely/internal/adapter/http/middleware"
	"invoicely/internal/domain/entities"
	"invoicely/internal/usecase"
	"invoicely/pkg"

	"github.com/gin-gonic/gin"
)

// JobHandler serves the dashboard's job CRUD under /v1/jobs.

type JobHandler struct {
	usecase usecase.IJobUseCase
}

func NewJobHandler(uc usecase.IJobUseCase) *JobHandler {
	return &JobHandler{usecase: uc}
}

// CreateJob godoc
// @Summary  Create a billable job
// @Security Bearer
// @Accept   json
// @Produce  json
// @Success  201
// @Failure  400
// @Router   /v1/jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		abortNoAuth(c)
		return
	}

	var req request.JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "name and price are required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	priceCents, err := req.ResolvePriceCents()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PRICE", "price must be a positive decimal amount", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	job, err := h.usecase.Create(c.Request.Context(), auth.CompanyID, usecase.JobInput{
		Name:       req.Name,
		ClientName: req.ClientName,
		PriceCents: priceCents,
	})
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.JobEnvelope{Success: true, Job: response.FromJob(job)})
}

// ListJobs godoc
// @Summary  List the company's jobs
// @Security Bearer
// @Produce  json
// @Success  200
// @Router   /v1/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		abortNoAuth(c)
		return
	}

	jobs, err := h.usecase.ListByCompany(c.Request.Context(), auth.CompanyID)
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromJobs(jobs))
}

func (h *JobHandler) GetJob(c *gin.Context) {
	h.respondWithJob(c, func(ctx context.Context, auth usecase.AuthContext, jobID string) (entities.Job, error) {
		return h.usecase.GetByID(ctx, auth.CompanyID, jobID)
	})
}

func (h *JobHandler) UpdatePrice(c *gin.Context) {
	var req request.JobPriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "price is required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	priceCents, err := req.ResolvePriceCents()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_PRICE", "price must be a positive decimal amount", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	h.respondWithJob(c, func(ctx context.Context, auth usecase.AuthContext, jobID string) (entities.Job, error) {
		return h.usecase.UpdatePrice(ctx, auth.CompanyID, jobID, priceCents)
	})
}

func (h *JobHandler) MarkPaid(c *gin.Context) {
	h.respondWithJob(c, func(ctx context.Context, auth usecase.AuthContext, jobID string) (entities.Job, error) {
		return h.usecase.MarkPaid(ctx, auth.CompanyID, jobID)
	})
}

func (h *JobHandler) Complete(c *gin.Context) {
	h.respondWithJob(c, func(ctx context.Context, auth usecase.AuthContext, jobID string) (entities.Job, error) {
		return h.usecase.Complete(ctx, auth.CompanyID, jobID)
	})
}

func (h *JobHandler) ListPayments(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		abortNoAuth(c)
		return
	}

	records, err := h.usecase.ListPayments(c.Request.Context(), auth.CompanyID, c.Param("id"))
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentRecords(records))
}

func (h *JobHandler) respondWithJob(c *gin.Context, op func(ctx context.Context, auth usecase.AuthContext, jobID string) (entities.Job, error)) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		abortNoAuth(c)
		return
	}

	job, err := op(c.Request.Context(), auth, c.Param("id"))
	if err != nil {
		appErr := mapJobError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.JobEnvelope{Success: true, Job: response.FromJob(job)})
}

func mapJobError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID), errors.Is(err, usecase.ErrInvalidJobName), errors.Is(err, usecase.ErrInvalidCompanyID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidJobPrice):
		return pkg.NewDomainErrorSimple("INVALID_PRICE", "price must be positive", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCheckoutAlreadyIssued):
		return pkg.NewDomainErrorSimple("CHECKOUT_ALREADY_ISSUED", "Price cannot change after a payment link was issued", http.StatusConflict)
	case errors.Is(err, usecase.ErrJobNotPaid):
		return pkg.NewDomainErrorSimple("JOB_NOT_PAID", "Only paid jobs can be completed", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
