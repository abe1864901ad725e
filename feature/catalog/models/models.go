package models

// All returns every catalog model, in dependency order, for migrations and
// schema checks.
func All() []any {
	return []any{
		&Size{},
		&Color{},
		&Warehouse{},
		&Variant{},
		&InventoryRecord{},
		&InventoryMaster{},
		&LedgerEntry{},
		&DriftRecord{},
	}
}
