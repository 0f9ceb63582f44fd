package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/betmaster21/blackjack-backend/internal/common"
	"github.com/betmaster21/blackjack-backend/internal/server/models"
)

func (h *Handler) SaveMandatoryDetails(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	email := h.bearerEmail(req)
	if email == "" {
		return errorResponse(401, detailUnauthorized)
	}

	var body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		DOB       string `json:"dob"`
		Country   string `json:"country"`
	}
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(400, detailInvalidBody)
	}

	details := models.MandatoryDetails{
		FirstName: strings.TrimSpace(body.FirstName),
		LastName:  strings.TrimSpace(body.LastName),
		DOB:       strings.TrimSpace(body.DOB),
		Country:   strings.TrimSpace(body.Country),
	}
	if details.FirstName == "" || details.LastName == "" || details.DOB == "" || details.Country == "" {
		return errorResponse(400, detailAllFieldsRequired)
	}

	if err := h.accounts.SaveMandatoryDetails(ctx, email, details); err != nil {
		h.logger.Error(ctx, "save mandatory details error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	return jsonResponse(200, map[string]string{"status": "saved"})
}

func (h *Handler) GetProfile(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	email := h.bearerEmail(req)
	if email == "" {
		return errorResponse(401, detailUnauthorized)
	}

	account, err := h.accounts.GetProfile(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errorResponse(404, detailUserNotFound)
		}
		h.logger.Error(ctx, "get profile error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	return jsonResponse(200, map[string]any{
		"first_name":                  account.FirstName,
		"last_name":                   account.LastName,
		"dob":                         account.DOB,
		"country":                     account.Country,
		"mandatory_details_completed": account.MandatoryDetailsCompleted,
	})
}
