package routes

import (
	"log/slog"
	"net/http"
	"time"

	"invoicely/internal/adapter/http/handlers"
	"invoicely/internal/adapter/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "invoicely/docs"
)

// Handlers groups everything the router mounts. All dependencies are passed
// in at construction time; no package-level state.
type Handlers struct {
	Checkout *handlers.CheckoutHandler
	Webhook  *handlers.WebhookHandler
	Connect  *handlers.ConnectHandler
	Jobs     *handlers.JobHandler
}

func New(h Handlers, jwtSecret string, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "Stripe-Signature"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addInvoicingRoutes(router, h, jwtSecret)

	return router
}
