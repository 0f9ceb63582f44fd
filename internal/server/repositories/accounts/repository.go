// Package accounts persists user account records in the users table.
package accounts

import (
	"context"

	"github.com/betmaster21/blackjack-backend/internal/server/models"
)

// Repository is the account store contract. Lookups by email return
// common.ErrorNotFound when no record exists. Create assumes the caller has
// already checked for existence; update methods set or clear named fields
// without rewriting the whole record.
type Repository interface {
	Get(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	UpdateMandatoryDetails(ctx context.Context, email string, details models.MandatoryDetails) error
	UpdatePassword(ctx context.Context, email, passwordHash string, providers []string) error
	SetOTP(ctx context.Context, email string, otp models.OTPState) error
	ClearOTP(ctx context.Context, email string) error
}
