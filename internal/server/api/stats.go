package api

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/betmaster21/blackjack-backend/internal/server/models"
	"github.com/betmaster21/blackjack-backend/internal/server/services"
)

// SaveStats appends one gameplay record. The subject comes from the API
// Gateway JWT authorizer, not from a re-parsed header. Optional extended
// fields with the wrong JSON type are skipped, not rejected, so older and
// newer clients share the endpoint.
func (h *Handler) SaveStats(ctx context.Context, req events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	userID := authorizerSubject(req)
	if userID == "" {
		return errorResponse(401, detailUnauthorized)
	}

	// UseNumber keeps the literal form, so "3" and "3.0" stay apart below.
	var body map[string]any
	dec := json.NewDecoder(strings.NewReader(req.Body))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return errorResponse(400, detailInvalidStats)
	}

	result, _ := body["result"].(string)
	mistakes, ok := intField(body, "mistakes")
	if !models.ValidResult(result) || !ok {
		return errorResponse(400, detailInvalidStats)
	}

	input := services.StatInput{
		Result:   result,
		Mistakes: mistakes,
	}
	if n, ok := body["net_payout"].(json.Number); ok {
		if v, err := n.Float64(); err == nil {
			payout := int(v)
			input.NetPayout = &payout
		}
	}
	if v, ok := intField(body, "hands_played"); ok {
		input.HandsPlayed = &v
	}
	if v, ok := body["details"].(map[string]any); ok {
		input.Details = plainNumbers(v).(map[string]any)
	}

	if err := h.stats.Save(ctx, userID, input); err != nil {
		h.logger.Error(ctx, "save stats error", "error", err.Error())
		return errorResponse(500, detailInternal)
	}

	return jsonResponse(200, map[string]string{"status": "saved"})
}

func authorizerSubject(req events.APIGatewayV2HTTPRequest) string {
	authorizer := req.RequestContext.Authorizer
	if authorizer == nil || authorizer.JWT == nil {
		return ""
	}
	return authorizer.JWT.Claims["sub"]
}

// intField reads a JSON number and accepts it only when it was written as
// an integer. A fractional literal like 3.0 does not count.
func intField(body map[string]any, key string) (int, bool) {
	n, ok := body[key].(json.Number)
	if !ok {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// plainNumbers rewrites json.Number values inside free-form details back to
// floats; the literal form only matters for the integer checks above.
func plainNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		for k, e := range x {
			x[k] = plainNumbers(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = plainNumbers(e)
		}
		return x
	default:
		return v
	}
}
