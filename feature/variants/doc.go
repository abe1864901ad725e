// Package variants expands a product's size and color selections into
// sellable variants.
//
// A request names up to two size axes (storage, ram) and a list of colors.
// The generator loads the active master records, takes the Cartesian product
// of the present axes crossed with the colors, and refuses requests that
// expand past MaxCombinations. Each combination is identified by its config
// hash; combinations already stored are skipped, which makes generation
// idempotent. New variants get a human readable SKU (suffixed on collision)
// and a zero-stock inventory row at the default warehouse.
//
// Everything runs in one retryable transaction: the unique index on the
// config hash settles races between concurrent requests, and the loser's
// retry observes the winner's rows and completes as a no-op.
package variants
