package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// FeePolicy controls whether the platform fee is charged on top of the job
// price or deducted from it. This is a product decision fixed by deployment
// configuration, never inferred.
const (
	FeePolicyOnTop    = "on_top"
	FeePolicyAbsorbed = "absorbed"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"invoicely"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"invoicely"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	Stripe struct {
		SecretKey         string `envconfig:"STRIPE_SECRET_KEY"`
		WebhookSecret     string `envconfig:"STRIPE_WEBHOOK_SECRET"`
		PlatformAccountID string `envconfig:"STRIPE_PLATFORM_ACCOUNT_ID"`
		FeeBasisPoints    int64  `envconfig:"STRIPE_FEE_BPS" default:"500"`
		FeePolicy         string `envconfig:"STRIPE_FEE_POLICY" default:"on_top"`
	}

	Checkout struct {
		Currency      string `envconfig:"CURRENCY" default:"usd"`
		MinimumCents  int64  `envconfig:"CHECKOUT_MIN_CENTS" default:"50"`
		SuccessURL    string `envconfig:"CHECKOUT_SUCCESS_URL" default:"http://localhost:3000/payment/success"`
		CancelURL     string `envconfig:"CHECKOUT_CANCEL_URL" default:"http://localhost:3000/payment/cancelled"`
		RefreshURL    string `envconfig:"CONNECT_REFRESH_URL" default:"http://localhost:3000/profile?refresh=1"`
		ReturnURL     string `envconfig:"CONNECT_RETURN_URL" default:"http://localhost:3000/profile?connected=1"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"console"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Stripe.FeePolicy != FeePolicyOnTop && cfg.Stripe.FeePolicy != FeePolicyAbsorbed {
		return nil, fmt.Errorf("invalid STRIPE_FEE_POLICY %q: must be %q or %q",
			cfg.Stripe.FeePolicy, FeePolicyOnTop, FeePolicyAbsorbed)
	}

	return &cfg, nil
}
