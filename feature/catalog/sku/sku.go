package sku

import (
	"crypto/rand"
	"io"
	"strings"
	"unicode"
)

const (
	brandLength   = 3
	groupLength   = 6
	colorLength   = 3
	sizeMaxLength = 10
	maxSizeTokens = 2

	// Fallback fills a missing size or color segment.
	Fallback = "STD"
	// FallbackBrand fills a missing brand or product group segment.
	FallbackBrand = "GEN"
	// SuffixLength is the length of collision suffixes.
	SuffixLength = 4
)

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// suffixCutoff is the largest multiple of the alphabet size that fits in a
// byte. Bytes at or above it are redrawn so every character is equally likely.
const suffixCutoff = 256 - 256%len(suffixAlphabet)

// GenerateBase derives the human readable base SKU of a configuration:
// BRAND-GROUP-SIZES-COLOR, upper-cased. The result is deterministic but not
// unique; callers append a suffix when it collides.
func GenerateBase(brand, productGroup string, sizes []string, colorName string) string {
	return strings.Join([]string{
		BrandCode(brand),
		GroupCode(productGroup),
		SizeCode(sizes),
		ColorCode(colorName),
	}, "-")
}

// BrandCode returns the first three alphanumerics of the brand.
func BrandCode(brand string) string {
	return headOr(Alnum(brand), brandLength, FallbackBrand)
}

// GroupCode returns the last six alphanumerics of the product group.
func GroupCode(productGroup string) string {
	a := Alnum(productGroup)
	if a == "" {
		return FallbackBrand
	}
	if len(a) > groupLength {
		return a[len(a)-groupLength:]
	}
	return a
}

// SizeCode concatenates the first two non-empty size tokens, capped at ten
// characters.
func SizeCode(sizes []string) string {
	var b strings.Builder
	used := 0
	for _, s := range sizes {
		token := Alnum(s)
		if token == "" {
			continue
		}
		b.WriteString(token)
		used++
		if used == maxSizeTokens {
			break
		}
	}
	return headOr(b.String(), sizeMaxLength, Fallback)
}

// ColorCode returns the first three alphanumerics of the color name.
func ColorCode(colorName string) string {
	return headOr(Alnum(colorName), colorLength, Fallback)
}

// WithSuffix appends a collision suffix to a base SKU.
func WithSuffix(base, suffix string) string {
	return base + "-" + suffix
}

// RandomSuffix returns n uniformly random characters from A-Z0-9.
func RandomSuffix(n int) string {
	// crypto/rand.Reader does not fail on supported platforms.
	s, _ := suffixFrom(rand.Reader, n)
	return s
}

func suffixFrom(r io.Reader, n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		chunk := buf[:n-len(out)]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return "", err
		}
		for _, b := range chunk {
			if int(b) < suffixCutoff {
				out = append(out, suffixAlphabet[int(b)%len(suffixAlphabet)])
			}
		}
	}
	return string(out), nil
}

// Alnum upper-cases s and strips everything but ASCII letters and digits.
func Alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func headOr(s string, n int, fallback string) string {
	if s == "" {
		return fallback
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}
