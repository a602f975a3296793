package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignPayment returns the hex HMAC-SHA256 of "orderID|paymentID", the
// signature the checkout hands to the client after a capture.
func SignPayment(secret, orderID, paymentID string) string {
	return sign(secret, []byte(orderID+"|"+paymentID))
}

// SignWebhook returns the hex HMAC-SHA256 of a raw webhook body.
func SignWebhook(secret string, body []byte) string {
	return sign(secret, body)
}

func sign(secret string, msg []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(msg)
	return hex.EncodeToString(mac.Sum(nil))
}

// verifySignature compares in constant time. An empty secret never verifies.
func verifySignature(secret string, msg []byte, got string) bool {
	if secret == "" {
		return false
	}
	got = strings.ToLower(strings.TrimSpace(got))
	if got == "" {
		return false
	}
	want := sign(secret, msg)
	return hmac.Equal([]byte(want), []byte(got))
}
