package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_secret_key"
	const orderID = "order_Nx7q2LmPd0a1Bc"
	const paymentID = "pay_Nx7r9KtQe2b3Cd"

	t.Run("valid signature", func(t *testing.T) {
		signature := signPayload(orderID, paymentID, secret)
		assert.True(t, VerifySignature(orderID, paymentID, signature, secret))
	})

	t.Run("wrong secret", func(t *testing.T) {
		signature := signPayload(orderID, paymentID, "other_secret")
		assert.False(t, VerifySignature(orderID, paymentID, signature, secret))
	})

	t.Run("tampered payment id", func(t *testing.T) {
		signature := signPayload(orderID, paymentID, secret)
		assert.False(t, VerifySignature(orderID, "pay_forged", signature, secret))
	})

	t.Run("empty inputs rejected", func(t *testing.T) {
		signature := signPayload(orderID, paymentID, secret)
		assert.False(t, VerifySignature("", paymentID, signature, secret))
		assert.False(t, VerifySignature(orderID, "", signature, secret))
		assert.False(t, VerifySignature(orderID, paymentID, "", secret))
		assert.False(t, VerifySignature(orderID, paymentID, signature, ""))
	})
}
