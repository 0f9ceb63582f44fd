package api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/betmaster21/blackjack-backend/internal/common"
	"github.com/betmaster21/blackjack-backend/internal/server/services"
)

const minPasswordLength = 8

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignUp(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	var body credentialsRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, detailInvalidBody)
	}
	if body.Email == "" || body.Password == "" {
		return errorResponse(400, detailEmailPasswordRequired)
	}

	userID, err := h.accounts.SignUp(ctx, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailExists) {
			return errorResponse(400, detailEmailExists)
		}
		h.logger.Error(ctx, "signup error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	return jsonResponse(201, map[string]string{
		"status":  "success",
		"user_id": userID,
	})
}

func (h *Handler) Login(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	var body credentialsRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, detailInvalidBody)
	}
	if body.Email == "" || body.Password == "" {
		return errorResponse(400, detailEmailPasswordRequired)
	}

	result, err := h.accounts.Login(ctx, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return errorResponse(401, detailIncorrectCredentials)
		}
		h.logger.Error(ctx, "login error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	return loginResponse(result)
}

func (h *Handler) GoogleAuth(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	var body struct {
		Email    string `json:"email"`
		GoogleID string `json:"google_id"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, detailInvalidBody)
	}
	if body.Email == "" || body.GoogleID == "" {
		return errorResponse(400, detailEmailGoogleIDRequired)
	}

	result, err := h.accounts.GoogleAuth(ctx, body.Email, body.GoogleID, body.Name)
	if err != nil {
		h.logger.Error(ctx, "google auth error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	return loginResponse(result)
}

func (h *Handler) ForgotPassword(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, detailInvalidBody)
	}
	if body.Email == "" {
		return errorResponse(400, detailEmailRequired)
	}

	devOTP, err := h.accounts.ForgotPassword(ctx, body.Email)
	if err != nil {
		if errors.Is(err, common.ErrRateLimited) {
			return errorResponse(429, detailTooManyOTPRequests)
		}
		h.logger.Error(ctx, "forgot password error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	// identical shape for known and unknown identifiers
	payload := map[string]string{"status": "sent"}
	if devOTP != "" {
		payload["dev_otp"] = devOTP
	}
	return jsonResponse(200, payload)
}

func (h *Handler) VerifyOTP(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, detailInvalidBody)
	}
	if body.Email == "" || body.OTP == "" {
		return errorResponse(400, detailEmailOTPRequired)
	}

	resetToken, err := h.accounts.VerifyOTP(ctx, body.Email, body.OTP)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrOTPExpired):
			return errorResponse(400, detailOTPExpired)
		case errors.Is(err, common.ErrOTPInvalid):
			return errorResponse(400, detailInvalidOTP)
		}
		h.logger.Error(ctx, "verify otp error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	return jsonResponse(200, map[string]string{
		"status":      "verified",
		"reset_token": resetToken,
	})
}

func (h *Handler) ResetPassword(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	var body struct {
		ResetToken  string `json:"reset_token"`
		NewPassword string `json:"new_password"`
	}
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, detailInvalidBody)
	}
	if body.ResetToken == "" {
		return errorResponse(400, detailResetTokenInvalid)
	}
	if len(body.NewPassword) < minPasswordLength {
		return errorResponse(400, detailPasswordTooShort)
	}

	result, err := h.accounts.ResetPassword(ctx, body.ResetToken, body.NewPassword)
	if err != nil {
		if errors.Is(err, common.ErrResetTokenInvalid) {
			return errorResponse(400, detailResetTokenInvalid)
		}
		h.logger.Error(ctx, "reset password error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	return loginResponse(result)
}

func (h *Handler) ChangePassword(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	email := h.bearerEmail(req)
	if email == "" {
		return errorResponse(401, detailUnauthorized)
	}

	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, detailInvalidBody)
	}
	if len(body.NewPassword) < minPasswordLength {
		return errorResponse(400, detailPasswordTooShort)
	}

	err := h.accounts.ChangePassword(ctx, email, body.CurrentPassword, body.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			return errorResponse(401, detailCurrentPasswordWrong)
		case errors.Is(err, common.ErrorNotFound):
			return errorResponse(404, detailUserNotFound)
		}
		h.logger.Error(ctx, "change password error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	return jsonResponse(200, map[string]string{"status": "changed"})
}

func loginResponse(result *services.LoginResult) events.APIGatewayV2HTTPResponse {
	return jsonResponse(200, map[string]any{
		"access_token":                result.AccessToken,
		"token_type":                  "bearer",
		"mandatory_details_completed": result.MandatoryDetailsCompleted,
	})
}
