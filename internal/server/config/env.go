package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays selected Config fields from environment variables.
//
// Supported variables:
//
//	APP_NAME                      application display name
//	SECRET_KEY                    JWT HMAC secret key
//	JWT_ALGORITHM                 JWT signing algorithm tag
//	ACCESS_TOKEN_EXPIRE_MINUTES   session token validity, minutes
//	RESET_TOKEN_EXPIRE_MINUTES    reset token validity, minutes
//	USERS_TABLE                   DynamoDB users table name
//	STATS_TABLE                   DynamoDB stats table name
//	SES_REGION                    SES region for outbound email
//	SES_FROM_EMAIL                sender address for OTP email
//
// Duration variables are accepted as integers in minutes. Unset or
// malformed values leave the current (default) value in place.
func parseEnv(config *Config) {
	overlayString(&config.AppName, "APP_NAME")
	overlayString(&config.SecretKey, "SECRET_KEY")
	overlayString(&config.Algorithm, "JWT_ALGORITHM")
	overlayMinutes(&config.AccessTokenTTL, "ACCESS_TOKEN_EXPIRE_MINUTES")
	overlayMinutes(&config.ResetTokenTTL, "RESET_TOKEN_EXPIRE_MINUTES")
	overlayString(&config.UsersTable, "USERS_TABLE")
	overlayString(&config.StatsTable, "STATS_TABLE")
	overlayString(&config.SESRegion, "SES_REGION")
	overlayString(&config.SESFromEmail, "SES_FROM_EMAIL")
}

func overlayString(dst *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func overlayMinutes(dst *time.Duration, name string) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	minutes, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = time.Duration(minutes) * time.Minute
}
