// Package confighash computes the canonical identity of a product
// configuration.
//
// A configuration is a product id plus an unordered multiset of attribute
// value ids. GenerateConfigHash canonicalizes every id to a trimmed string,
// sorts the attributes and hashes
//
//	<product>:<attr1>|<attr2>|...
//
// with SHA-256, so the same configuration always yields the same lowercase
// hex digest regardless of the order or concrete type of its ids. The
// digest backs the unique index that makes variant generation idempotent.
//
// The package also carries the cosmetic helpers built around that identity:
// readable signatures, SKU strategies and batch duplicate detection.
package confighash
