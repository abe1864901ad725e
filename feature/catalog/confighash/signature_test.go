package confighash

import (
	"regexp"
	"testing"
	"time"

	"variant-manager/core/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfigSignature(t *testing.T) {
	got := GenerateConfigSignature([]Attribute{
		{Type: "color", Value: "Black", Order: 3},
		{Type: "storage", Value: "128GB", Order: 1},
		{Type: "ram", Value: "8gb", Order: 2},
	})
	assert.Equal(t, "STORAGE:128GB|RAM:8GB|COLOR:BLACK", got)
}

func TestGenerateConfigSignature_StableTies(t *testing.T) {
	got := GenerateConfigSignature([]Attribute{
		{Type: "b", Value: "2"},
		{Type: "a", Value: "1"},
	})
	assert.Equal(t, "B:2|A:1", got)
	assert.Empty(t, GenerateConfigSignature(nil))
}

func TestGenerateSKU_Auto(t *testing.T) {
	cfg := SKUConfig{
		Strategy:     StrategyAuto,
		Brand:        "Acme",
		ProductGroup: "PHONE-X",
		Color:        "Black",
		Sizes:        []string{"128GB"},
		Now:          func() time.Time { return time.UnixMilli(1700000000000) },
	}

	got, err := GenerateSKU(cfg)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ACM-PHONEX-BLA-128GB-LOYW3V28-[A-Z0-9]{4}$`), got)
}

func TestGenerateSKU_Template(t *testing.T) {
	got, err := GenerateSKU(SKUConfig{
		Strategy:     StrategyTemplate,
		Brand:        "Acme",
		ProductGroup: "PHONE-X",
		Color:        "Blue",
		Sizes:        []string{"64GB"},
		Template:     "{BRAND}/{group}/{SIZE}/{COLOR}",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACM/PHONEX/64GB/BLU", got)

	got, err = GenerateSKU(SKUConfig{Strategy: StrategyTemplate, Brand: "Acme", Template: "{BRAND}-{RANDOM}"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ACM-[A-Z0-9]{4}$`), got)
}

func TestGenerateSKU_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  SKUConfig
	}{
		{"Unknown Placeholder", SKUConfig{Strategy: StrategyTemplate, Template: "{BRAND}-{SEASON}"}},
		{"Missing Template", SKUConfig{Strategy: StrategyTemplate}},
		{"Manual", SKUConfig{Strategy: StrategyManual}},
		{"Unknown Strategy", SKUConfig{Strategy: "bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSKU(tt.cfg)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}
