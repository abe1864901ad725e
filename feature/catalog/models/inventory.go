package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRecord is the stock of one variant in one warehouse.
type InventoryRecord struct {
	ID               string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	VariantID        string    `gorm:"column:variant_id;type:varchar(36);uniqueIndex:idx_inventory_variant_warehouse" json:"variant_id"`
	WarehouseID      string    `gorm:"column:warehouse_id;type:varchar(64);uniqueIndex:idx_inventory_variant_warehouse" json:"warehouse_id"`
	Quantity         int64     `gorm:"column:quantity;not null" json:"quantity"`
	ReservedQuantity int64     `gorm:"column:reserved_quantity;not null" json:"reserved_quantity"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (InventoryRecord) TableName() string {
	return "inventory_records"
}

func (r *InventoryRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Available is the sellable quantity. It is derived, never stored.
func (r InventoryRecord) Available() int64 {
	return r.Quantity - r.ReservedQuantity
}

// InventoryMaster caches the total stock of a variant across warehouses.
// Stock flows keep it in step with the ledger; reconciliation verifies that.
type InventoryMaster struct {
	VariantID     string    `gorm:"column:variant_id;type:varchar(36);primaryKey" json:"variant_id"`
	SKU           string    `gorm:"column:sku;type:varchar(64);index" json:"sku"`
	TotalStock    int64     `gorm:"column:total_stock;not null" json:"total_stock"`
	ReservedStock int64     `gorm:"column:reserved_stock;not null" json:"reserved_stock"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (InventoryMaster) TableName() string {
	return "inventory_masters"
}

// Ledger transaction types.
const (
	LedgerStockIn    = "STOCK_IN"
	LedgerStockOut   = "STOCK_OUT"
	LedgerAdjustment = "ADJUSTMENT"
	LedgerTransfer   = "TRANSFER"
)

// LedgerEntry is an immutable stock movement. The sum of Quantity over a
// variant's entries is its authoritative total stock.
type LedgerEntry struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VariantID       string    `gorm:"column:variant_id;type:varchar(36);index" json:"variant_id"`
	Quantity        int64     `gorm:"column:quantity;not null" json:"quantity"` // signed delta
	TransactionType string    `gorm:"column:transaction_type;type:varchar(32)" json:"transaction_type"`
	Reason          string    `gorm:"column:reason;type:varchar(255)" json:"reason"`
	StockBefore     int64     `gorm:"column:stock_before" json:"stock_before"`
	StockAfter      int64     `gorm:"column:stock_after" json:"stock_after"`
	PerformedBy     string    `gorm:"column:performed_by;type:varchar(128)" json:"performed_by"`
	TransactionDate time.Time `gorm:"column:transaction_date;index" json:"transaction_date"`
}

func (LedgerEntry) TableName() string {
	return "inventory_ledger"
}

// Drift severities and statuses.
const (
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"

	DriftOpen          = "OPEN"
	DriftInvestigating = "INVESTIGATING"
	DriftResolved      = "RESOLVED"
	DriftIgnored       = "IGNORED"
)

// DriftRecord is a detected disagreement between the cached total and the
// ledger, awaiting operator triage.
type DriftRecord struct {
	ID                    string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	RunID                 string    `gorm:"column:run_id;type:varchar(36);index" json:"run_id"`
	VariantID             string    `gorm:"column:variant_id;type:varchar(36);index" json:"variant_id"`
	SKU                   string    `gorm:"column:sku;type:varchar(64)" json:"sku"`
	ExpectedStock         int64     `gorm:"column:expected_stock" json:"expected_stock"`
	ActualStockFromLedger int64     `gorm:"column:actual_stock_from_ledger" json:"actual_stock_from_ledger"`
	Drift                 int64     `gorm:"column:drift" json:"drift"`
	Severity              string    `gorm:"column:severity;type:varchar(16)" json:"severity"`
	Status                string    `gorm:"column:status;type:varchar(16);index" json:"status"`
	Notes                 string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt             time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (DriftRecord) TableName() string {
	return "inventory_drifts"
}

func (d *DriftRecord) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
