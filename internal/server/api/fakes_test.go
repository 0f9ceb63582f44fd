package api

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/betmaster21/blackjack-backend/internal/common"
	"github.com/betmaster21/blackjack-backend/internal/logging"
	"github.com/betmaster21/blackjack-backend/internal/server/auth"
	"github.com/betmaster21/blackjack-backend/internal/server/config"
	"github.com/betmaster21/blackjack-backend/internal/server/models"
	"github.com/betmaster21/blackjack-backend/internal/server/services"
	"github.com/stretchr/testify/require"
)

type memAccountsRepo struct {
	items map[string]*models.Account

	getErr            error
	createErr         error
	updateDetailsErr  error
	updatePasswordErr error
	setOTPErr         error
	clearOTPErr       error
}

func newMemAccountsRepo() *memAccountsRepo {
	return &memAccountsRepo{items: map[string]*models.Account{}}
}

func (m *memAccountsRepo) Get(ctx context.Context, email string) (*models.Account, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	account, ok := m.items[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *account
	return &cp, nil
}

func (m *memAccountsRepo) Create(ctx context.Context, account *models.Account) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *account
	m.items[account.Email] = &cp
	return nil
}

func (m *memAccountsRepo) UpdateMandatoryDetails(ctx context.Context, email string, details models.MandatoryDetails) error {
	if m.updateDetailsErr != nil {
		return m.updateDetailsErr
	}
	account := m.upsert(email)
	account.FirstName = details.FirstName
	account.LastName = details.LastName
	account.DOB = details.DOB
	account.Country = details.Country
	account.MandatoryDetailsCompleted = true
	return nil
}

func (m *memAccountsRepo) UpdatePassword(ctx context.Context, email, passwordHash string, providers []string) error {
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	account := m.upsert(email)
	account.PasswordHash = passwordHash
	account.Providers = providers
	return nil
}

func (m *memAccountsRepo) SetOTP(ctx context.Context, email string, otp models.OTPState) error {
	if m.setOTPErr != nil {
		return m.setOTPErr
	}
	account := m.upsert(email)
	account.OTPCode = otp.Code
	expires := otp.ExpiresAt
	account.OTPExpiresAt = &expires
	window := otp.WindowStart
	account.OTPWindowStart = &window
	account.OTPRequestCount = otp.RequestCount
	return nil
}

func (m *memAccountsRepo) ClearOTP(ctx context.Context, email string) error {
	if m.clearOTPErr != nil {
		return m.clearOTPErr
	}
	account := m.upsert(email)
	account.OTPCode = ""
	account.OTPExpiresAt = nil
	return nil
}

func (m *memAccountsRepo) upsert(email string) *models.Account {
	account, ok := m.items[email]
	if !ok {
		account = &models.Account{Email: email}
		m.items[email] = account
	}
	return account
}

type memStatsRepo struct {
	records   []*models.StatRecord
	insertErr error
}

func (m *memStatsRepo) Insert(ctx context.Context, record *models.StatRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.records = append(m.records, record)
	return nil
}

type testEnv struct {
	handler  *Handler
	accounts *memAccountsRepo
	stats    *memStatsRepo
	issuer   *auth.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret-key"

	accountsRepo := newMemAccountsRepo()
	statsRepo := &memStatsRepo{}
	issuer := auth.NewTokenIssuer(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL, cfg.ResetTokenTTL)
	logger := logging.NewNoop()

	accountSvc := services.NewAccountService(accountsRepo, nil, issuer, cfg, logger)
	statsSvc := services.NewStatsService(statsRepo)

	return &testEnv{
		handler:  NewHandler(accountSvc, statsSvc, issuer, logger),
		accounts: accountsRepo,
		stats:    statsRepo,
		issuer:   issuer,
	}
}

func (e *testEnv) post(t *testing.T, routeKey string, payload any) events.APIGatewayV2HTTPResponse {
	t.Helper()
	return e.request(t, routeKey, payload, "")
}

func (e *testEnv) request(t *testing.T, routeKey string, payload any, bearer string) events.APIGatewayV2HTTPResponse {
	t.Helper()

	var body string
	switch v := payload.(type) {
	case string:
		body = v
	default:
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = string(raw)
	}

	req := events.APIGatewayV2HTTPRequest{RouteKey: routeKey, Body: body}
	if bearer != "" {
		req.Headers = map[string]string{"authorization": "Bearer " + bearer}
	}

	resp, err := e.handler.Route(context.Background(), req)
	require.NoError(t, err, "Route never returns an error")
	return resp
}

func decode(t *testing.T, resp events.APIGatewayV2HTTPResponse) map[string]any {
	t.Helper()
	body := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	return body
}

// signUp registers a local account through the public route.
func (e *testEnv) signUp(t *testing.T, email, password string) {
	t.Helper()
	resp := e.post(t, "POST /signup", map[string]string{"email": email, "password": password})
	require.Equal(t, resp.StatusCode, 201)
}

// loginToken logs in and returns the bearer token.
func (e *testEnv) loginToken(t *testing.T, email, password string) string {
	t.Helper()
	resp := e.post(t, "POST /login", map[string]string{"email": email, "password": password})
	require.Equal(t, resp.StatusCode, 200)
	token, _ := decode(t, resp)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

// expireOTP backdates the stored OTP expiry for an account.
func (e *testEnv) expireOTP(email string) {
	past := time.Now().Add(-time.Minute)
	e.accounts.items[email].OTPExpiresAt = &past
}
