package repository

import "context"

// TransactionManager runs a function inside one database transaction. All
// repository calls made with the derived context join that transaction;
// returning an error rolls everything back.
//
// Marking an invoice paid and archiving its project and quote go through
// this so the two mutations are atomic from the caller's point of view.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
