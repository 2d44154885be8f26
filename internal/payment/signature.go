// Package payment creates gateway payment orders and verifies the
// signatures the checkout returns once a payment completes.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/iliyamo/eventflow-booking/internal/model"
)

// Sign returns the hex HMAC-SHA256 of orderID + "|" + paymentID keyed by
// secret.  This is the signature the gateway attaches to a completed
// payment.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verifier checks verification records against the gateway secret.  It
// holds no state besides the secret, so a record always verifies the same
// way.
type Verifier struct {
	secret string
}

// NewVerifier returns a Verifier for the given gateway key secret.
func NewVerifier(secret string) *Verifier { return &Verifier{secret: secret} }

// Verify reports whether rec.Signature is exactly the expected signature.
// The comparison is byte-for-byte on the hex text, so an upper-cased
// digest does not match.
func (v *Verifier) Verify(rec model.VerificationRecord) bool {
	expected := Sign(v.secret, rec.OrderID, rec.PaymentID)
	return hmac.Equal([]byte(expected), []byte(rec.Signature))
}
