// Package webhook parses and authenticates inbound provider callbacks,
// normalizing each source's native payload into status events.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ComputeSignature returns the hex HMAC-SHA256 of body under secret.
func ComputeSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a provider signature header against the raw body.
// Meta prefixes the digest with "sha256="; other gateways send the bare hex.
// Comparison is constant-time.
func VerifySignature(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}

	received := strings.TrimPrefix(header, "sha256=")
	expected := ComputeSignature(secret, body)

	return hmac.Equal([]byte(expected), []byte(received))
}
