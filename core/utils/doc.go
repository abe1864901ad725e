// Package utils provides small conversion helpers shared across packages:
// query parameter parsing in handlers and the stable string form used when
// canonicalizing identifiers for hashing.
package utils
