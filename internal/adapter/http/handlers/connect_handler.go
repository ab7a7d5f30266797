package handlers

import (
	"errors"
	"net/http"

	"invoicely/internal/adapter/http/dto/response"
	"invoicely/internal/adapter/http/middleware"
	"invoicely/internal/usecase"
	"invoicely/internal/usecase/interfaces"
	"invoicely/pkg"

	"github.com/gin-gonic/gin"
)

// ConnectHandler handles connected-account onboarding and status checks.

type ConnectHandler struct {
	usecase usecase.IConnectUseCase
}

func NewConnectHandler(uc usecase.IConnectUseCase) *ConnectHandler {
	return &ConnectHandler{usecase: uc}
}

// StartOnboarding godoc
// @Summary  Create a connected account and onboarding link
// @Security Bearer
// @Produce  json
// @Success  200
// @Failure  401
// @Failure  403
// @Router   /stripe-connect [post]
func (h *ConnectHandler) StartOnboarding(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		abortNoAuth(c)
		return
	}

	link, err := h.usecase.CreateOnboardingLink(c.Request.Context(), auth)
	if err != nil {
		appErr := mapConnectError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOnboardingLink(link))
}

// CheckStatus godoc
// @Summary  Refresh and report the connected-account status
// @Security Bearer
// @Produce  json
// @Success  200
// @Failure  401
// @Router   /check-stripe-status [get]
func (h *ConnectHandler) CheckStatus(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		abortNoAuth(c)
		return
	}

	status, err := h.usecase.CheckAccountStatus(c.Request.Context(), auth)
	if err != nil {
		appErr := mapConnectError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAccountStatus(status))
}

func mapConnectError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrNotCompanyOwner):
		return pkg.NewDomainErrorSimple("OWNER_ONLY", "Only the company owner can manage the connected account", http.StatusForbidden)
	case errors.Is(err, interfaces.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENTS_NOT_CONFIGURED", "Payment processor is not configured", http.StatusInternalServerError).
			WithHint("set STRIPE_SECRET_KEY")
	case errors.Is(err, interfaces.ErrGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENTS_UNAUTHORIZED", "Payment processor rejected the credentials", http.StatusInternalServerError).
			WithHint("check STRIPE_SECRET_KEY")
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func abortNoAuth(c *gin.Context) {
	appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", "missing authentication context", http.StatusUnauthorized)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
