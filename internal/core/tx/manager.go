// Package tx defines the transaction boundary the domain layer works
// against. The postgres implementation lives in
// infrastructure/storage/postgres; services only see this interface.
package tx

import (
	"context"
)

// Manager runs a function inside a database transaction.
type Manager interface {
	// RunInTransaction executes fn within a transaction. An error from
	// fn rolls back, nil commits. Nested calls join the transaction
	// already carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager adds read-only transactions for reporting queries.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction. Writes inside
	// fn fail at the database.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
