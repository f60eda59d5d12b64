package store

import "context"

// TxFn is a function that executes within a storage transaction. Every
// store operation performed with the context passed to it joins the same
// transaction: all of its writes commit together, or none do.
type TxFn func(ctx context.Context) error

// TxRunner executes functions within an atomic multi-document
// transaction. If fn returns an error the transaction is aborted and no
// partial writes remain visible; otherwise it is committed. Commit and
// begin failures are reported wrapped in ErrTransactionFailed.
//
// This is the facility the place service relies on to keep a Place
// document and its owner's place set mutually consistent.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn TxFn) error
}
