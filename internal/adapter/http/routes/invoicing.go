package routes

import (
	"invoicely/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const PathJobs = "/jobs"

func addInvoicingRoutes(router *gin.Engine, h Handlers, jwtSecret string) {
	// Processor-facing endpoints keep their published paths at the root.
	router.POST("/create-checkout", h.Checkout.CreateCheckout)
	router.POST("/stripe-webhook", h.Webhook.HandleWebhook)

	auth := middleware.RequireAuth(jwtSecret)

	router.POST("/stripe-connect", auth, h.Connect.StartOnboarding)
	router.GET("/check-stripe-status", auth, h.Connect.CheckStatus)

	v1 := router.Group("/v1", auth)
	jobs := v1.Group(PathJobs)
	{
		jobs.POST("", h.Jobs.CreateJob)
		jobs.GET("", h.Jobs.ListJobs)
		jobs.GET("/:id", h.Jobs.GetJob)
		jobs.PATCH("/:id/price", h.Jobs.UpdatePrice)
		jobs.POST("/:id/mark-paid", h.Jobs.MarkPaid)
		jobs.POST("/:id/complete", h.Jobs.Complete)
		jobs.GET("/:id/payments", h.Jobs.ListPayments)
	}
}
