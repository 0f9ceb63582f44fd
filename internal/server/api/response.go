package api

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

// Fixed user-facing detail strings. These are part of the client contract;
// do not reword them.
const (
	detailEmailPasswordRequired = "Email and password are required."
	detailEmailExists           = "Email already exists."
	detailIncorrectCredentials  = "Incorrect username or password"
	detailEmailGoogleIDRequired = "Email and google_id are required."
	detailUnauthorized          = "Unauthorized"
	detailUserNotFound          = "User not found."
	detailAllFieldsRequired     = "All fields (first_name, last_name, dob, country) are required."
	detailInvalidStats          = "Invalid stats data."
	detailInternal              = "An unexpected error occurred."
	detailInvalidBody           = "Invalid request body."
	detailNotFound              = "Not found."

	detailEmailRequired        = "Email is required."
	detailEmailOTPRequired     = "Email and OTP are required."
	detailTooManyOTPRequests   = "Too many OTP requests. Please try again later."
	detailInvalidOTP           = "Invalid OTP."
	detailOTPExpired           = "OTP has expired. Please request a new one."
	detailResetTokenInvalid    = "Invalid or expired reset token."
	detailPasswordTooShort     = "Password must be at least 8 characters long."
	detailCurrentPasswordWrong = "Current password is incorrect."
)

func jsonResponse(status int, payload any) events.APIGatewayV2HTTPResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"detail":"` + detailInternal + `"}`,
		}
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func errorResponse(status int, detail string) events.APIGatewayV2HTTPResponse {
	return jsonResponse(status, map[string]string{"detail": detail})
}
