// Package services contains the stateless business logic of the backend.
// Each operation is a single request-scoped call against the external
// stores; nothing is shared between invocations and nothing is retried
// internally, failures surface to the caller.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/betmaster21/blackjack-backend/internal/common"
	"github.com/betmaster21/blackjack-backend/internal/logging"
	"github.com/betmaster21/blackjack-backend/internal/server/auth"
	"github.com/betmaster21/blackjack-backend/internal/server/config"
	"github.com/betmaster21/blackjack-backend/internal/server/email"
	"github.com/betmaster21/blackjack-backend/internal/server/models"
	"github.com/betmaster21/blackjack-backend/internal/server/repositories/accounts"
	"github.com/google/uuid"
)

// LoginResult is what every token-issuing operation returns to the client.
type LoginResult struct {
	AccessToken               string
	MandatoryDetailsCompleted bool
}

type AccountService struct {
	accounts accounts.Repository
	email    email.Sender
	tokens   *auth.TokenIssuer
	appName  string
	logger   logging.Logger
}

// NewAccountService wires the account store, the outbound email sender and
// the token issuer. A nil sender means email delivery is unconfigured; the
// reset flow then falls back to returning the OTP in the response.
func NewAccountService(repo accounts.Repository, sender email.Sender, tokens *auth.TokenIssuer, cfg *config.Config, logger logging.Logger) *AccountService {
	return &AccountService{
		accounts: repo,
		email:    sender,
		tokens:   tokens,
		appName:  cfg.AppName,
		logger:   logger,
	}
}

// SignUp creates a local account and returns its new ID.
func (s *AccountService) SignUp(ctx context.Context, emailAddr, password string) (string, error) {
	_, err := s.accounts.Get(ctx, emailAddr)
	if err == nil {
		return "", common.ErrEmailExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("error checking account: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		PasswordHash: hash,
		Providers:    []string{models.ProviderLocal},
		CreatedAt:    time.Now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return "", fmt.Errorf("error creating account: %w", err)
	}

	return account.ID, nil
}

// Login verifies a local credential and issues a session token. Unknown
// account and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	account, err := s.accounts.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	if account.PasswordHash == "" || !auth.CheckPassword(password, account.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &LoginResult{AccessToken: token, MandatoryDetailsCompleted: account.MandatoryDetailsCompleted}, nil
}

// GoogleAuth logs a federated user in, creating a passwordless account on
// first sight.
func (s *AccountService) GoogleAuth(ctx context.Context, emailAddr, googleID, name string) (*LoginResult, error) {
	account, err := s.accounts.Get(ctx, emailAddr)
	if err == nil {
		token, err := s.tokens.GenerateAccessToken(account.ID, account.Email)
		if err != nil {
			return nil, fmt.Errorf("error generating token: %w", err)
		}
		return &LoginResult{AccessToken: token, MandatoryDetailsCompleted: account.MandatoryDetailsCompleted}, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	account = &models.Account{
		ID:        uuid.NewString(),
		Email:     emailAddr,
		Name:      name,
		GoogleID:  googleID,
		Providers: []string{models.ProviderGoogle},
		CreatedAt: time.Now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &LoginResult{AccessToken: token, MandatoryDetailsCompleted: false}, nil
}

// SaveMandatoryDetails writes the four profile fields and marks the account
// complete.
func (s *AccountService) SaveMandatoryDetails(ctx context.Context, emailAddr string, details models.MandatoryDetails) error {
	if err := s.accounts.UpdateMandatoryDetails(ctx, emailAddr, details); err != nil {
		return fmt.Errorf("error saving details: %w", err)
	}
	return nil
}

// GetProfile returns the account record for the given email.
func (s *AccountService) GetProfile(ctx context.Context, emailAddr string) (*models.Account, error) {
	account, err := s.accounts.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading account: %w", err)
	}
	return account, nil
}
