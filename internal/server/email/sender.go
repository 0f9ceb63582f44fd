// Package email delivers OTP mail through SES.
package email

import "context"

// Sender delivers a single plain-text message. Failure is reported to the
// caller but is never fatal to the request that triggered it.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
