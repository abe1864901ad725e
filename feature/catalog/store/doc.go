// Package store holds the gorm queries of the catalog.
//
// Every lookup that feeds a batch is a single IN query so a batch costs a
// constant number of round trips. Inside a transaction build the Store with
// New(tx); sqlite test databases run on one connection and deadlock if a
// transaction body touches the outer handle.
package store
