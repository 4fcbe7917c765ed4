package values

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"
)

// Digest is a content hash with its algorithm.
type Digest struct {
	algorithm string // sha256 or sha512
	value     string // hex-encoded
}

// NewDigest creates a digest from an algorithm and hex value.
func NewDigest(algorithm, hexValue string) (Digest, error) {
	switch algorithm {
	case "sha256", "sha512":
	default:
		return Digest{}, fmt.Errorf("unsupported digest algorithm: %s", algorithm)
	}
	if _, err := hex.DecodeString(hexValue); err != nil {
		return Digest{}, fmt.Errorf("digest value is not hex: %w", err)
	}
	return Digest{algorithm: algorithm, value: strings.ToLower(hexValue)}, nil
}

// ParseDigest parses a digest string such as "sha256:9f86d08...".
func ParseDigest(s string) (Digest, error) {
	algorithm, value, ok := strings.Cut(s, ":")
	if !ok {
		return Digest{}, fmt.Errorf("invalid digest format: %s", s)
	}
	return NewDigest(algorithm, value)
}

// ComputeDigest hashes all of r with the given algorithm.
func ComputeDigest(algorithm string, r io.Reader) (Digest, error) {
	var h hash.Hash
	switch algorithm {
	case "sha256":
		h = sha256.New()
	case "sha512":
		h = sha512.New()
	default:
		return Digest{}, fmt.Errorf("unsupported digest algorithm: %s", algorithm)
	}

	if _, err := io.Copy(h, r); err != nil {
		return Digest{}, fmt.Errorf("hash content: %w", err)
	}
	return Digest{algorithm: algorithm, value: hex.EncodeToString(h.Sum(nil))}, nil
}

// String returns the canonical "algorithm:hex" form.
func (d Digest) String() string {
	return d.algorithm + ":" + d.value
}

// Algorithm returns the hash algorithm.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns the hex-encoded hash.
func (d Digest) Value() string {
	return d.value
}

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool {
	return d.algorithm == "" && d.value == ""
}

// Equals checks equality with another digest.
func (d Digest) Equals(other Digest) bool {
	return d == other
}
