package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Variant status values.
const (
	VariantActive   = "active"
	VariantInactive = "inactive"
)

// VariantSize is the denormalized copy of a size stored on a variant.
type VariantSize struct {
	SizeID   string `json:"size_id"`
	Category string `json:"category"`
	Value    string `json:"value"`
}

// Variant is a sellable product configuration. ConfigHash is the
// authoritative duplicate guard; SKU is the human facing identifier.
type Variant struct {
	ID             string            `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ProductGroup   string            `gorm:"column:product_group;type:varchar(128);index" json:"product_group"`
	ProductName    string            `gorm:"column:product_name;type:varchar(255)" json:"product_name"`
	Brand          string            `gorm:"column:brand;type:varchar(128)" json:"brand"`
	Category       string            `gorm:"column:category;type:varchar(128)" json:"category"`
	SKU            string            `gorm:"column:sku;type:varchar(64);uniqueIndex" json:"sku"`
	ConfigHash     string            `gorm:"column:config_hash;type:varchar(64);uniqueIndex" json:"config_hash"`
	ColorID        string            `gorm:"column:color_id;type:varchar(64);index" json:"color_id"`
	Sizes          []VariantSize     `gorm:"column:sizes;type:text;serializer:json" json:"sizes"`
	Price          decimal.Decimal   `gorm:"column:price;type:decimal(12,2)" json:"price"`
	Images         []string          `gorm:"column:images;type:text;serializer:json" json:"images"`
	Description    string            `gorm:"column:description;type:text" json:"description"`
	Specifications map[string]string `gorm:"column:specifications;type:text;serializer:json" json:"specifications"`
	Status         string            `gorm:"column:status;type:varchar(16)" json:"status"`
	CreatedAt      time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (Variant) TableName() string {
	return "variants"
}

// BeforeCreate assigns an id when the caller did not.
func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// SizeIDs returns the ids of the variant's sizes in stored order.
func (v Variant) SizeIDs() []string {
	ids := make([]string, 0, len(v.Sizes))
	for _, s := range v.Sizes {
		ids = append(ids, s.SizeID)
	}
	return ids
}
