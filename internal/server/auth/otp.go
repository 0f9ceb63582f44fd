package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateOTP returns a crypto-secure 6-digit OTP string, uniform over
// 100000–999999. The range excludes leading zeros so no padding is needed.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
