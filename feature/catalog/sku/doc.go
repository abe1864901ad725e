// Package sku synthesizes compact, human readable SKUs.
//
// GenerateBase is deterministic: the same brand, group, sizes and color always
// yield the same base SKU, so two configurations can collide. Resolving a
// collision (WithSuffix + RandomSuffix) is left to the caller, who knows which
// SKUs are already taken.
package sku
