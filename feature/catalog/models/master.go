package models

// Size axes understood by the variant generator.
const (
	AxisStorage = "storage"
	AxisRAM     = "ram"
)

// Size is a size master record (e.g. storage 64GB, ram 8GB).
type Size struct {
	ID string `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	// Axis groups sizes that are mutually exclusive on one variant.
	Axis         string `gorm:"column:axis;type:varchar(32);index" json:"axis"`
	Value        string `gorm:"column:value;type:varchar(64)" json:"value"`
	DisplayOrder int    `gorm:"column:display_order" json:"display_order"`
	IsActive     bool   `gorm:"column:is_active;not null" json:"is_active"`
}

// TableName overrides the table name.
func (Size) TableName() string {
	return "sizes"
}

// Color is a color master record.
type Color struct {
	ID       string `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:varchar(64)" json:"name"`
	HexCode  string `gorm:"column:hex_code;type:varchar(7)" json:"hex_code"`
	IsActive bool   `gorm:"column:is_active;not null" json:"is_active"`
}

func (Color) TableName() string {
	return "colors"
}

// Warehouse is a stock location. Exactly one active warehouse is expected to
// carry IsDefault; it receives the zero-stock rows of new variants.
type Warehouse struct {
	ID        string `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Code      string `gorm:"column:code;type:varchar(32);uniqueIndex" json:"code"`
	Name      string `gorm:"column:name;type:varchar(128)" json:"name"`
	IsDefault bool   `gorm:"column:is_default;not null" json:"is_default"`
	IsActive  bool   `gorm:"column:is_active;not null" json:"is_active"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}
