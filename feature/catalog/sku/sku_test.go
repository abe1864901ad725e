package sku

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBase(t *testing.T) {
	tests := []struct {
		name  string
		brand string
		group string
		sizes []string
		color string
		want  string
	}{
		{"Single Axis", "Acme", "PHONE-X", []string{"64GB"}, "Black", "ACM-PHONEX-64GB-BLA"},
		{"Two Axes", "Acme", "PHONE-X", []string{"128GB", "8GB"}, "Blue", "ACM-PHONEX-128GB8GB-BLU"},
		{"Long Group Keeps Tail", "Acme", "galaxy-s-2024-ultra", nil, "red", "ACM-4ULTRA-STD-RED"},
		{"Size Capped At Ten", "Acme", "G", []string{"1024 GB", "16 GB", "2GB"}, "Red", "ACM-G-1024GB16GB-RED"},
		{"Size Truncated", "Acme", "G", []string{"XXXXXXXX", "YYYYYYYY"}, "Red", "ACM-G-XXXXXXXXYY-RED"},
		{"Fallbacks", "", "", nil, "", "GEN-GEN-STD-STD"},
		{"Strips Punctuation", "a.c-m!e", "x", []string{" 64 gb "}, "Sky Blue", "ACM-X-64GB-SKY"},
		{"Skips Empty Size Tokens", "Acme", "X", []string{"--", "256GB"}, "Black", "ACM-X-256GB-BLA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateBase(tt.brand, tt.group, tt.sizes, tt.color))
		})
	}
}

func TestGenerateBase_Deterministic(t *testing.T) {
	a := GenerateBase("Acme", "PHONE-X", []string{"64GB"}, "Black")
	b := GenerateBase("Acme", "PHONE-X", []string{"64GB"}, "Black")
	assert.Equal(t, a, b)
}

func TestColorCode_Collides(t *testing.T) {
	// Different colors can share a code; callers must disambiguate.
	assert.Equal(t, ColorCode("Black"), ColorCode("Blackberry"))
}

func TestRandomSuffix(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{4}$`)
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		s := RandomSuffix(SuffixLength)
		assert.Regexp(t, pattern, s)
		seen[s] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestSuffixFrom_RedrawsBiasedBytes(t *testing.T) {
	s, err := suffixFrom(bytes.NewReader([]byte{252, 253, 254, 255, 0, 35, 36, 251}), 4)
	require.NoError(t, err)
	assert.Equal(t, "A9A9", s)
}

func TestSuffixFrom_Uniform(t *testing.T) {
	// Every byte value once, high bytes first: 252 survive, 7 per character.
	src := make([]byte, 0, 256)
	for b := 252; b < 256; b++ {
		src = append(src, byte(b))
	}
	for b := 0; b < 252; b++ {
		src = append(src, byte(b))
	}

	s, err := suffixFrom(bytes.NewReader(src), 252)
	require.NoError(t, err)
	require.Len(t, s, 252)
	for _, c := range suffixAlphabet {
		assert.Equal(t, 7, strings.Count(s, string(c)), "character %c", c)
	}
}

func TestSuffixFrom_ShortRead(t *testing.T) {
	_, err := suffixFrom(bytes.NewReader([]byte{1, 255}), 2)
	assert.Error(t, err)
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "ACM-X-STD-BLA-Q7ZP", WithSuffix("ACM-X-STD-BLA", "Q7ZP"))
}
