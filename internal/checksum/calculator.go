package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Calculator computes content checksums.
type Calculator interface {
	// Sum returns the hex-encoded digest of content, unmodified.
	Sum(content []byte) string
}

// SHA256 implements Calculator using SHA-256.
// SHA256 is a zero-size type and is safe for concurrent use.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Sum computes SHA-256 of content.
func (c SHA256) Sum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Short truncates a hex digest to n characters for display.
// Digests shorter than n, and non-positive n, are returned unchanged.
func Short(sum string, n int) string {
	if n <= 0 || len(sum) <= n {
		return sum
	}
	return sum[:n]
}

var _ Calculator = SHA256{}
