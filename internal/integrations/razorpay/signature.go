package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ExpectedSignature is hex(HMAC_SHA256(secret, orderID + "|" + paymentID)).
func ExpectedSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := ExpectedSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyPaymentSignature checks a checkout callback with the client's key secret.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) (bool, error) {
	if !c.configured() {
		return false, ErrNotConfigured
	}
	return VerifySignature(c.keySecret, orderID, paymentID, signature), nil
}
