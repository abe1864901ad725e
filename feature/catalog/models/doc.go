// Package models defines the gorm models of the catalog.
//
// Master data (Size, Color, Warehouse) is read-only for the catalog
// operations. Variant and InventoryRecord are written by variant generation;
// InventoryMaster and LedgerEntry are written by stock flows elsewhere and read
// by reconciliation, which in turn writes DriftRecord.
package models
