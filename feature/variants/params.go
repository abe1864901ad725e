package variants

import (
	"reflect"
	"strings"

	"variant-manager/core/apperr"
	"variant-manager/feature/catalog/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Params describes one generation request.
type Params struct {
	ProductGroup   string            `json:"productGroup" validate:"required,max=128"`
	ProductName    string            `json:"productName" validate:"required,max=255"`
	Brand          string            `json:"brand" validate:"max=128"`
	Category       string            `json:"category" validate:"max=128"`
	StorageIDs     []string          `json:"storageIds" validate:"omitempty,dive,required"`
	RAMIDs         []string          `json:"ramIds" validate:"omitempty,dive,required"`
	ColorIDs       []string          `json:"colorIds" validate:"omitempty,dive,required"`
	BasePrice      decimal.Decimal   `json:"basePrice"`
	Description    string            `json:"description"`
	Specifications map[string]string `json:"specifications"`
	Images         []string          `json:"images" validate:"omitempty,dive,required"`
}

// sizeAxis is one optional size dimension of a request.
type sizeAxis struct {
	field string
	axis  string
	ids   []string
}

// sizeAxes lists the request's size dimensions in SKU order.
func (p Params) sizeAxes() []sizeAxis {
	return []sizeAxis{
		{field: "storageIds", axis: models.AxisStorage, ids: p.StorageIDs},
		{field: "ramIds", axis: models.AxisRAM, ids: p.RAMIDs},
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateParams(v *validator.Validate, p Params) error {
	if err := v.Struct(p); err != nil {
		return apperr.FromValidator(err)
	}
	if strings.TrimSpace(p.ProductGroup) == "" {
		return apperr.NewValidation("productGroup", "is required")
	}
	if strings.TrimSpace(p.ProductName) == "" {
		return apperr.NewValidation("productName", "is required")
	}
	if p.BasePrice.IsNegative() {
		return apperr.NewValidation("basePrice", "must not be negative")
	}
	return nil
}
