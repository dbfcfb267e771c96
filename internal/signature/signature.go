package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrInvalidSignature = errors.New("INVALID_SIGNATURE")

// Verifier checks the X-Signature header against an HMAC-SHA256 digest of
// the raw request body. It must see the exact bytes the sender signed;
// re-encoding a decoded payload would change them.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Configured reports whether a shared secret is set. An unset secret is a
// readiness failure, not a per-request condition.
func (v *Verifier) Configured() bool {
	return len(v.secret) > 0
}

// Verify returns ErrInvalidSignature when the header is missing, is not a
// hex SHA-256 digest, or does not match the HMAC of body. The comparison
// is constant-time.
func (v *Verifier) Verify(body []byte, header string) error {
	if !v.Configured() || header == "" {
		return ErrInvalidSignature
	}

	provided, err := hex.DecodeString(header)
	if err != nil || len(provided) != sha256.Size {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)

	if !hmac.Equal(mac.Sum(nil), provided) {
		return ErrInvalidSignature
	}

	return nil
}
