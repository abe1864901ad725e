// Package apperr defines the typed errors shared by the catalog features.
//
// Two kinds of failure reach callers of the catalog operations:
//
//   - ValidationError: the request itself is wrong (missing field, unknown
//     master-data ids, combinatorial cap exceeded). Never retried.
//   - ConcurrencyError: a transaction kept conflicting with concurrent writers
//     until the retry budget ran out. Callers should simply try again.
//
// HTTP handlers map the former to 400 and the latter to 409 via StatusCode.
package apperr
