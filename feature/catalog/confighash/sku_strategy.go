package confighash

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"variant-manager/core/apperr"
	"variant-manager/feature/catalog/sku"
)

// Strategy selects how GenerateSKU builds a code.
type Strategy string

const (
	StrategyAuto     Strategy = "auto"
	StrategyTemplate Strategy = "template"
	StrategyManual   Strategy = "manual"
)

// SKUConfig describes the configuration a SKU is generated for.
type SKUConfig struct {
	Strategy     Strategy
	Brand        string
	ProductGroup string
	Color        string
	Sizes        []string
	// Template is used by StrategyTemplate, e.g. "{BRAND}-{GROUP}-{RANDOM}".
	Template string
	// Now defaults to time.Now.
	Now func() time.Time
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z]+)\}`)

// GenerateSKU builds a SKU that is unique with high probability, unlike the
// deterministic sku.GenerateBase.
func GenerateSKU(cfg SKUConfig) (string, error) {
	switch cfg.Strategy {
	case StrategyAuto, "":
		return autoSKU(cfg), nil
	case StrategyTemplate:
		return templateSKU(cfg)
	case StrategyManual:
		return "", apperr.NewValidation("strategy", "manual SKUs must be supplied by the caller")
	default:
		return "", apperr.NewValidation("strategy", "unknown SKU strategy %q", cfg.Strategy)
	}
}

func autoSKU(cfg SKUConfig) string {
	return strings.Join([]string{
		sku.BrandCode(cfg.Brand),
		sku.GroupCode(cfg.ProductGroup),
		sku.ColorCode(cfg.Color),
		sku.SizeCode(cfg.Sizes),
		timeToken(cfg.now()),
		sku.RandomSuffix(sku.SuffixLength),
	}, "-")
}

func templateSKU(cfg SKUConfig) (string, error) {
	if strings.TrimSpace(cfg.Template) == "" {
		return "", apperr.NewValidation("template", "is required for the template strategy")
	}

	values := map[string]string{
		"BRAND":  sku.BrandCode(cfg.Brand),
		"GROUP":  sku.GroupCode(cfg.ProductGroup),
		"COLOR":  sku.ColorCode(cfg.Color),
		"SIZE":   sku.SizeCode(cfg.Sizes),
		"RANDOM": sku.RandomSuffix(sku.SuffixLength),
	}

	var unknown string
	out := placeholderPattern.ReplaceAllStringFunc(cfg.Template, func(m string) string {
		name := strings.ToUpper(m[1 : len(m)-1])
		v, ok := values[name]
		if !ok && unknown == "" {
			unknown = m
		}
		return v
	})
	if unknown != "" {
		return "", apperr.NewValidation("template", "unknown placeholder %s", unknown)
	}
	return strings.ToUpper(out), nil
}

func timeToken(t time.Time) string {
	return strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

func (c SKUConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
