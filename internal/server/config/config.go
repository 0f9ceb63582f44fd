// Package config handles runtime configuration for the backend, including
// defaults and environment-variable overlay.
package config

import "time"

// Config holds runtime settings for the BetMaster21 backend.
//
// Fields:
//   - AppName: display name used in outbound email subjects.
//   - SecretKey: HMAC secret for signing JWTs. Do not use the default in prod.
//   - Algorithm: JWT signing algorithm tag (HMAC family, e.g. "HS256").
//   - AccessTokenTTL / ResetTokenTTL: token lifetimes. Reset tokens are
//     deliberately much shorter-lived than session tokens.
//   - UsersTable / StatsTable: DynamoDB table names.
//   - SESRegion / SESFromEmail: outbound OTP email settings.
type Config struct {
	AppName        string
	SecretKey      string
	Algorithm      string
	AccessTokenTTL time.Duration
	ResetTokenTTL  time.Duration
	UsersTable     string
	StatsTable     string
	SESRegion      string
	SESFromEmail   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.AppName = "BetMaster21"
	c.SecretKey = "your-super-secret-key"
	c.Algorithm = "HS256"
	c.AccessTokenTTL = 30 * time.Minute
	c.ResetTokenTTL = 5 * time.Minute
	c.UsersTable = "UsersTable"
	c.StatsTable = "StatsTable"
	c.SESRegion = "us-east-1"
	c.SESFromEmail = "noreply@betmaster21.com"
}

// LoadConfig builds a Config by applying defaults and then overlaying values
// from environment variables. Lambda functions are configured through the
// environment, so there is no flag or file layer here.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}
