package config

import (
	"time"

	"github.com/runeforge-network/launchpad/internal/postgres"
)

type Config struct {
	Postgres postgres.Config `mapstructure:"postgres"`

	// Admin is the account allowed to create runes, trigger holder
	// withdrawals and use the signing gateway.
	Admin string `mapstructure:"admin"`

	Payment PaymentService `mapstructure:"payment"`
	Signer  Signer         `mapstructure:"signer"`

	// AuthTokens maps bearer tokens to the account they authenticate as.
	AuthTokens map[string]string `mapstructure:"auth_tokens"`

	Sweeper Sweeper `mapstructure:"sweeper"`
}

// PaymentService is the external payment-token ledger. Mint notifications and
// transfer results are only accepted from its account.
type PaymentService struct {
	Account   string `mapstructure:"account"`
	BaseURL   string `mapstructure:"base_url"`
	AuthToken string `mapstructure:"auth_token"`
}

// Signer is the external threshold-signature service.
type Signer struct {
	Account   string `mapstructure:"account"`
	BaseURL   string `mapstructure:"base_url"`
	AuthToken string `mapstructure:"auth_token"`
}

type Sweeper struct {
	// Interval between scans for stale in-flight transfers. Zero disables the sweeper.
	Interval time.Duration `mapstructure:"interval"`

	// MaxAge after which a transfer still waiting for its result is reported.
	MaxAge time.Duration `mapstructure:"max_age"`
}
