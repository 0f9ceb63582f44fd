package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/betmaster21/blackjack-backend/internal/common"
	"github.com/betmaster21/blackjack-backend/internal/server/auth"
	"github.com/betmaster21/blackjack-backend/internal/server/models"
)

const (
	otpValidity    = 10 * time.Minute
	otpWindow      = time.Hour
	otpMaxRequests = 5
)

// ForgotPassword starts the reset flow: rate-limit, issue an OTP, persist
// it with its expiry and deliver it by email.
//
// Unknown identifiers return success with no OTP, so the response is
// indistinguishable from the existing-account case (enumeration
// resistance). When delivery is unconfigured or fails, the code comes back
// as devOTP for the caller to surface; that is a non-production fallback.
func (s *AccountService) ForgotPassword(ctx context.Context, emailAddr string) (devOTP string, err error) {
	account, err := s.accounts.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("error loading account: %w", err)
	}

	now := time.Now()
	windowStart, count, err := nextOTPWindow(account, now)
	if err != nil {
		return "", err
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("error generating otp: %w", err)
	}

	err = s.accounts.SetOTP(ctx, emailAddr, models.OTPState{
		Code:         code,
		ExpiresAt:    now.Add(otpValidity),
		WindowStart:  windowStart,
		RequestCount: count,
	})
	if err != nil {
		return "", fmt.Errorf("error storing otp: %w", err)
	}

	if s.email == nil {
		s.logger.Warn(ctx, "email sender not configured, returning dev otp", "email", emailAddr)
		return code, nil
	}

	subject := fmt.Sprintf("Your %s Password Reset Code", s.appName)
	body := fmt.Sprintf("Your OTP code is: %s\n\nThis code expires in 10 minutes.", code)
	if err := s.email.Send(ctx, emailAddr, subject, body); err != nil {
		s.logger.Warn(ctx, "otp email delivery failed, returning dev otp", "email", emailAddr, "error", err.Error())
		return code, nil
	}

	return "", nil
}

// nextOTPWindow applies the fixed-window policy to an account's stored
// window state: absent or stale windows restart at count 1, fresh windows
// increment up to otpMaxRequests, and anything beyond is rejected without
// touching the record.
//
// The read-modify-write is not protected against concurrent requests for
// the same account; a benign race can under- or over-count inside a
// window. Known approximation.
func nextOTPWindow(account *models.Account, now time.Time) (time.Time, int, error) {
	if account.OTPWindowStart == nil || now.Sub(*account.OTPWindowStart) >= otpWindow {
		return now, 1, nil
	}
	if account.OTPRequestCount >= otpMaxRequests {
		return time.Time{}, 0, common.ErrRateLimited
	}
	return *account.OTPWindowStart, account.OTPRequestCount + 1, nil
}

// VerifyOTP checks a submitted code, consumes it and issues a reset token.
// Absent accounts, absent codes and mismatches all fail with ErrOTPInvalid;
// only a matching-but-expired code reports ErrOTPExpired.
func (s *AccountService) VerifyOTP(ctx context.Context, emailAddr, otp string) (string, error) {
	account, err := s.accounts.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrOTPInvalid
		}
		return "", fmt.Errorf("error loading account: %w", err)
	}

	if account.OTPCode == "" || otp == "" || account.OTPCode != otp {
		return "", common.ErrOTPInvalid
	}
	if account.OTPExpiresAt == nil {
		return "", common.ErrOTPInvalid
	}
	if time.Now().After(*account.OTPExpiresAt) {
		return "", common.ErrOTPExpired
	}

	// single use: both fields go away together
	if err := s.accounts.ClearOTP(ctx, emailAddr); err != nil {
		return "", fmt.Errorf("error clearing otp: %w", err)
	}

	token, err := s.tokens.GenerateResetToken(emailAddr)
	if err != nil {
		return "", fmt.Errorf("error generating reset token: %w", err)
	}
	return token, nil
}

// ResetPassword redeems a reset token for a credential change and logs the
// account in. Every failure mode of the token (tampered, expired, wrong
// type, account gone) collapses to ErrResetTokenInvalid.
func (s *AccountService) ResetPassword(ctx context.Context, resetToken, newPassword string) (*LoginResult, error) {
	emailAddr, err := s.tokens.ParseResetToken(resetToken)
	if err != nil {
		return nil, common.ErrResetTokenInvalid
	}

	account, err := s.accounts.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	if err := s.updatePassword(ctx, account, newPassword); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &LoginResult{AccessToken: token, MandatoryDetailsCompleted: account.MandatoryDetailsCompleted}, nil
}

// ChangePassword changes the credential of an authenticated account. The
// current password must verify unless the account has no stored hash yet,
// i.e. a federated-only account setting its first local password.
func (s *AccountService) ChangePassword(ctx context.Context, emailAddr, currentPassword, newPassword string) error {
	account, err := s.accounts.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading account: %w", err)
	}

	if account.PasswordHash != "" && !auth.CheckPassword(currentPassword, account.PasswordHash) {
		return common.ErrInvalidCredentials
	}

	return s.updatePassword(ctx, account, newPassword)
}

// updatePassword hashes and persists a new credential. Accounts that were
// federated-only gain the local provider without losing the federated one.
func (s *AccountService) updatePassword(ctx context.Context, account *models.Account, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	providers := account.Providers
	if !account.HasProvider(models.ProviderLocal) {
		providers = append(providers, models.ProviderLocal)
	}

	if err := s.accounts.UpdatePassword(ctx, account.Email, hash, providers); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}
