package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/betmaster21/blackjack-backend/internal/common"
	"github.com/betmaster21/blackjack-backend/internal/logging"
	"github.com/betmaster21/blackjack-backend/internal/server/auth"
	"github.com/betmaster21/blackjack-backend/internal/server/config"
	"github.com/betmaster21/blackjack-backend/internal/server/email"
	"github.com/betmaster21/blackjack-backend/internal/server/models"
)

var errBoom = errors.New("boom")

// fakeAccountsRepo is an in-memory stand-in for the DynamoDB accounts
// repository. It hands out copies so callers must go through the update
// methods, like a real remote store.
type fakeAccountsRepo struct {
	items map[string]*models.Account

	getErr    error
	createErr error
	setOTPErr error
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{items: map[string]*models.Account{}}
}

func (f *fakeAccountsRepo) Get(ctx context.Context, email string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	account, ok := f.items[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *account
	return &cp, nil
}

func (f *fakeAccountsRepo) Create(ctx context.Context, account *models.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *account
	f.items[account.Email] = &cp
	return nil
}

func (f *fakeAccountsRepo) UpdateMandatoryDetails(ctx context.Context, email string, details models.MandatoryDetails) error {
	account := f.mustGet(email)
	account.FirstName = details.FirstName
	account.LastName = details.LastName
	account.DOB = details.DOB
	account.Country = details.Country
	account.MandatoryDetailsCompleted = true
	now := time.Now()
	account.UpdatedAt = &now
	return nil
}

func (f *fakeAccountsRepo) UpdatePassword(ctx context.Context, email, passwordHash string, providers []string) error {
	account := f.mustGet(email)
	account.PasswordHash = passwordHash
	account.Providers = providers
	now := time.Now()
	account.UpdatedAt = &now
	return nil
}

func (f *fakeAccountsRepo) SetOTP(ctx context.Context, email string, otp models.OTPState) error {
	if f.setOTPErr != nil {
		return f.setOTPErr
	}
	account := f.mustGet(email)
	account.OTPCode = otp.Code
	expires := otp.ExpiresAt
	account.OTPExpiresAt = &expires
	window := otp.WindowStart
	account.OTPWindowStart = &window
	account.OTPRequestCount = otp.RequestCount
	return nil
}

func (f *fakeAccountsRepo) ClearOTP(ctx context.Context, email string) error {
	account := f.mustGet(email)
	account.OTPCode = ""
	account.OTPExpiresAt = nil
	return nil
}

// mustGet mirrors the DynamoDB upsert behavior of UpdateItem: a missing key
// gets a bare record rather than an error.
func (f *fakeAccountsRepo) mustGet(email string) *models.Account {
	account, ok := f.items[email]
	if !ok {
		account = &models.Account{Email: email}
		f.items[email] = account
	}
	return account
}

type fakeEmailSender struct {
	sendErr error

	sent []sentMail
}

type sentMail struct {
	recipient string
	subject   string
	body      string
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{recipient: recipient, subject: subject, body: body})
	return nil
}

type fakeStatsRepo struct {
	insertErr error

	records []*models.StatRecord
}

func (f *fakeStatsRepo) Insert(ctx context.Context, record *models.StatRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records = append(f.records, record)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret-key"
	return cfg
}

func newTestIssuer(cfg *config.Config) *auth.TokenIssuer {
	return auth.NewTokenIssuer(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL, cfg.ResetTokenTTL)
}

func newTestService(t *testing.T, repo *fakeAccountsRepo, sender *fakeEmailSender) (*AccountService, *auth.TokenIssuer) {
	t.Helper()
	cfg := testConfig()
	issuer := newTestIssuer(cfg)
	var mail email.Sender
	if sender != nil {
		// a typed nil would not compare equal to nil inside the service
		mail = sender
	}
	return NewAccountService(repo, mail, issuer, cfg, logging.NewNoop()), issuer
}
