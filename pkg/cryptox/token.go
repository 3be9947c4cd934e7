package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// TokenSize256 provides 256 bits of entropy (43 chars base64url).
const TokenSize256 = 32

// GenerateToken creates a cryptographically secure random token of the
// specified byte length, returned base64url-encoded without padding. Used for
// secrets that live in files rather than in people's hands, like the pepper.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateNumericCode returns a random code of exactly n decimal digits,
// suitable for codes a person types from an email or SMS.
func GenerateNumericCode(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", n)
	}

	var sb strings.Builder
	sb.Grow(n)
	for range n {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String(), nil
}

// GenerateHexCode returns an uppercase hex code of n characters, used for
// two-factor backup codes.
func GenerateHexCode(n int) (string, error) {
	if n <= 0 || n%2 != 0 {
		return "", fmt.Errorf("hex code length must be positive and even, got %d", n)
	}

	buf := make([]byte, n/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token as
// lowercase hex. Stored in place of raw tokens so lookups work without the
// original value ever being persisted.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
