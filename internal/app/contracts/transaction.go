package contracts

import "context"

type TransactionManager interface {
	// SupportsTransactions reports whether fn runs inside a multi-document
	// transaction that is rolled back when it fails.
	SupportsTransactions() bool
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
