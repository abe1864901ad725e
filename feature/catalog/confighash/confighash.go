package confighash

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"variant-manager/core/apperr"
	"variant-manager/core/utils"
)

// MaxLength is the length of an untruncated hash in hex characters.
const MaxLength = sha256.Size * 2

type options struct {
	length int
}

// Option tunes hash generation.
type Option func(*options) error

// WithLength truncates the hex digest to n characters (1..64).
// Shorter hashes trade collision resistance for readability.
func WithLength(n int) Option {
	return func(o *options) error {
		if n < 1 || n > MaxLength {
			return apperr.NewValidation("length", "must be between 1 and %d, got %d", MaxLength, n)
		}
		o.length = n
		return nil
	}
}

// Canonical renders an identifier in its stable string form: strings are
// trimmed, Stringers (uuid.UUID and friends) use String.
func Canonical(v any) string {
	return strings.TrimSpace(utils.ToString(v))
}

// GenerateConfigHash fingerprints a configuration: a product plus an unordered
// multiset of attribute value ids. The digest is independent of attribute
// order and of the ids' concrete type.
func GenerateConfigHash[T any](productID any, attributeValueIDs []T, opts ...Option) (string, error) {
	o := options{length: MaxLength}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return "", err
		}
	}

	key, err := canonicalKey(productID, attributeValueIDs)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:o.length], nil
}

// canonicalKey renders "<product>:<sorted attributes joined by |>".
func canonicalKey[T any](productID any, attributeValueIDs []T) (string, error) {
	product := Canonical(productID)
	if product == "" {
		return "", apperr.NewValidation("productId", "is required")
	}
	if len(attributeValueIDs) == 0 {
		return "", apperr.NewValidation("attributeValueIds", "must contain at least one id")
	}

	attrs := make([]string, len(attributeValueIDs))
	for i, id := range attributeValueIDs {
		attrs[i] = Canonical(id)
		if attrs[i] == "" {
			return "", apperr.NewValidation("attributeValueIds", "element %d is empty", i)
		}
	}
	sort.Strings(attrs)

	return product + ":" + strings.Join(attrs, "|"), nil
}

// VerifyConfigHash reports whether hash matches the configuration. Truncated
// hashes are compared against a digest of the same length.
func VerifyConfigHash[T any](hash string, productID any, attributeValueIDs []T) bool {
	if len(hash) == 0 || len(hash) > MaxLength {
		return false
	}
	got, err := GenerateConfigHash(productID, attributeValueIDs, WithLength(len(hash)))
	if err != nil {
		return false
	}
	return strings.EqualFold(got, hash)
}

// DetectCollision reports whether two different configurations share a hash.
// Identical configurations are not a collision.
func DetectCollision(a, b Input, opts ...Option) (bool, error) {
	keyA, err := canonicalKey(a.ProductID, a.AttributeIDs)
	if err != nil {
		return false, err
	}
	keyB, err := canonicalKey(b.ProductID, b.AttributeIDs)
	if err != nil {
		return false, err
	}
	if keyA == keyB {
		return false, nil
	}

	hashA, err := GenerateConfigHash(a.ProductID, a.AttributeIDs, opts...)
	if err != nil {
		return false, err
	}
	hashB, err := GenerateConfigHash(b.ProductID, b.AttributeIDs, opts...)
	if err != nil {
		return false, err
	}
	return hashA == hashB, nil
}
