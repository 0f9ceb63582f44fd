// Package api dispatches API Gateway HTTP events to the backend services
// and shapes their results into status codes and JSON bodies. Error bodies
// always carry a single fixed detail string per condition; clients depend
// on the exact wording.
package api

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/betmaster21/blackjack-backend/internal/logging"
	"github.com/betmaster21/blackjack-backend/internal/server/auth"
	"github.com/betmaster21/blackjack-backend/internal/server/services"
)

type Handler struct {
	accounts *services.AccountService
	stats    *services.StatsService
	tokens   *auth.TokenIssuer
	logger   logging.Logger
}

func NewHandler(accounts *services.AccountService, stats *services.StatsService, tokens *auth.TokenIssuer, logger logging.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		stats:    stats,
		tokens:   tokens,
		logger:   logger,
	}
}

// Route dispatches one API Gateway event by its route key. The returned
// error is always nil: every failure is already encoded as a response.
func (h *Handler) Route(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	switch req.RouteKey {
	case "POST /signup":
		return h.SignUp(ctx, req), nil
	case "POST /login":
		return h.Login(ctx, req), nil
	case "POST /google-auth":
		return h.GoogleAuth(ctx, req), nil
	case "POST /auth/forgot-password":
		return h.ForgotPassword(ctx, req), nil
	case "POST /auth/verify-otp":
		return h.VerifyOTP(ctx, req), nil
	case "POST /auth/reset-password":
		return h.ResetPassword(ctx, req), nil
	case "POST /auth/change-password":
		return h.ChangePassword(ctx, req), nil
	case "POST /user/mandatory-details":
		return h.SaveMandatoryDetails(ctx, req), nil
	case "GET /user/profile":
		return h.GetProfile(ctx, req), nil
	case "POST /stats":
		return h.SaveStats(ctx, req), nil
	default:
		return errorResponse(404, detailNotFound), nil
	}
}

// bearerEmail extracts the email claim from the Authorization header.
// Any missing, malformed or expired token yields an empty string; callers
// answer 401 without distinguishing why.
func (h *Handler) bearerEmail(req events.APIGatewayV2HTTPRequest) string {
	header := req.Headers["authorization"]
	if header == "" {
		header = req.Headers["Authorization"]
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	claims, err := h.tokens.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return ""
	}
	return claims.Email
}
