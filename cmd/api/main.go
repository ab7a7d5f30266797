package main

import (
	"fmt"
	"os"

	"invoicely/internal/adapter/http/handlers"
	"invoicely/internal/adapter/http/routes"
	"invoicely/internal/adapter/persistence/repository"
	"invoicely/internal/config"
	"invoicely/internal/infrastructure/database"
	"invoicely/internal/infrastructure/payments"
	"invoicely/internal/usecase"
	"invoicely/internal/usecase/interfaces"
	"invoicely/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Invoicely API
// @version         1.0
// @description     Multi-tenant invoicing backend: jobs, Stripe checkout links, webhook reconciliation.

// @host localhost:8080

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := database.ConnectPostgres(cfg.ConnectionString())
	if err != nil {
		log.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	jobRepo := repository.NewJobPostgresRepository(db)
	profileRepo := repository.NewProfilePostgresRepository(db)
	paymentRepo := repository.NewPaymentRecordPostgresRepository(db)

	// A missing Stripe key keeps the API up; payment operations report the
	// misconfiguration with a remediation hint instead.
	var gateway interfaces.IPaymentGateway
	stripeGateway, err := payments.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, log)
	if err != nil {
		log.Warn("stripe gateway not configured", "err", err)
	} else {
		gateway = stripeGateway
	}

	checkoutUC := usecase.NewCheckoutUseCase(jobRepo, profileRepo, gateway, usecase.CheckoutConfig{
		PlatformAccountID: cfg.Stripe.PlatformAccountID,
		FeeBasisPoints:    cfg.Stripe.FeeBasisPoints,
		FeePolicy:         cfg.Stripe.FeePolicy,
		MinimumCents:      cfg.Checkout.MinimumCents,
		Currency:          cfg.Checkout.Currency,
		SuccessURL:        cfg.Checkout.SuccessURL,
		CancelURL:         cfg.Checkout.CancelURL,
	}, log)
	webhookUC := usecase.NewWebhookUseCase(jobRepo, paymentRepo, gateway, log)
	connectUC := usecase.NewConnectUseCase(profileRepo, gateway, usecase.ConnectConfig{
		RefreshURL: cfg.Checkout.RefreshURL,
		ReturnURL:  cfg.Checkout.ReturnURL,
	}, log)
	jobUC := usecase.NewJobUseCase(jobRepo, paymentRepo, log)

	router := routes.New(routes.Handlers{
		Checkout: handlers.NewCheckoutHandler(checkoutUC),
		Webhook:  handlers.NewWebhookHandler(webhookUC),
		Connect:  handlers.NewConnectHandler(connectUC),
		Jobs:     handlers.NewJobHandler(jobUC),
	}, cfg.Auth.JWTSecret, log)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Info("starting api", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
