package handlers

import (
	"errors"
	"net/http"

	"invoicely/internal/adapter/http/dto/request"
	"invoicely/internal/adapter/http/dto/response"
	"invoicely/internal/usecase"
	"invoicely/internal/usecase/interfaces"
	"invoicely/pkg"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles POST /create-checkout.

type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// CreateCheckout godoc
// @Summary Create a hosted checkout session for a job
// @Accept  json
// @Produce json
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router  /create-checkout [post]
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req request.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "jobId is required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.CreateCheckoutSession(c.Request.Context(), req.JobID)
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCheckoutResult(result))
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "jobId is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidJobPrice):
		return pkg.NewDomainErrorSimple("INVALID_PRICE", "Job price is missing or not positive", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPriceBelowMinimum):
		return pkg.NewDomainErrorSimple("PRICE_BELOW_MINIMUM", "Job price is below the processor minimum charge", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENTS_NOT_CONFIGURED", "Payment processor is not configured", http.StatusInternalServerError).
			WithHint("set STRIPE_SECRET_KEY")
	case errors.Is(err, interfaces.ErrGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENTS_UNAUTHORIZED", "Payment processor rejected the credentials", http.StatusInternalServerError).
			WithHint("check STRIPE_SECRET_KEY")
	case errors.Is(err, interfaces.ErrGatewayBadRequest):
		return pkg.NewDomainErrorSimple("PAYMENTS_REJECTED", "Payment processor rejected the request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
