// Package models defines the record types persisted in DynamoDB.
package models

import "time"

// Provider tags for Account.Providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Account is a single user record in the users table, keyed by email.
//
// PasswordHash is empty for federated-only accounts (Google sign-in without
// a local password). The OTP* fields exist only between issuance and
// consumption or expiry: OTPCode and OTPExpiresAt are always set and cleared
// together. OTPWindowStart/OTPRequestCount carry the fixed-window state for
// OTP issuance rate limiting.
type Account struct {
	ID           string   `dynamodbav:"id"`
	Email        string   `dynamodbav:"email"`
	PasswordHash string   `dynamodbav:"password,omitempty"`
	Name         string   `dynamodbav:"name,omitempty"`
	GoogleID     string   `dynamodbav:"google_id,omitempty"`
	Providers    []string `dynamodbav:"auth_providers,omitempty"`

	FirstName                 string `dynamodbav:"first_name,omitempty"`
	LastName                  string `dynamodbav:"last_name,omitempty"`
	DOB                       string `dynamodbav:"dob,omitempty"`
	Country                   string `dynamodbav:"country,omitempty"`
	MandatoryDetailsCompleted bool   `dynamodbav:"mandatory_details_completed"`

	OTPCode         string     `dynamodbav:"otp_code,omitempty"`
	OTPExpiresAt    *time.Time `dynamodbav:"otp_expires_at,omitempty,unixtime"`
	OTPWindowStart  *time.Time `dynamodbav:"otp_window_start,omitempty,unixtime"`
	OTPRequestCount int        `dynamodbav:"otp_request_count,omitempty"`

	CreatedAt time.Time  `dynamodbav:"created_at,unixtime"`
	UpdatedAt *time.Time `dynamodbav:"updated_at,omitempty,unixtime"`
}

// HasProvider reports whether the account carries the given auth provider.
func (a *Account) HasProvider(p string) bool {
	for _, v := range a.Providers {
		if v == p {
			return true
		}
	}
	return false
}

// OTPState is the OTP issuance state written back to an account record in a
// single partial update: the code with its expiry plus the current
// rate-limit window.
type OTPState struct {
	Code         string
	ExpiresAt    time.Time
	WindowStart  time.Time
	RequestCount int
}

// MandatoryDetails is the profile field set every player has to complete
// before the first game.
type MandatoryDetails struct {
	FirstName string
	LastName  string
	DOB       string
	Country   string
}
