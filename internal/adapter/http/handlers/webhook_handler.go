package handlers

import (
	"errors"
	"net/http"

	"invoicely/internal/usecase"
	"invoicely/internal/usecase/interfaces"
	"invoicely/pkg"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles POST /stripe-webhook.
//
// The raw body is passed through untouched: signature verification covers
// the exact bytes the processor sent.

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleWebhook godoc
// @Summary Receive signed processor notifications
// @Accept  json
// @Produce json
// @Success 200
// @Failure 400
// @Router  /stripe-webhook [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Unable to read request body", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := h.usecase.HandleEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, interfaces.ErrInvalidSignature):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Webhook signature verification failed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingJobReference):
		return pkg.NewDomainErrorSimple("MISSING_JOB_REFERENCE", "Event metadata has no job id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job referenced by event not found", http.StatusNotFound)
	case errors.Is(err, interfaces.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENTS_NOT_CONFIGURED", "Webhook secret is not configured", http.StatusInternalServerError).
			WithHint("set STRIPE_WEBHOOK_SECRET")
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
