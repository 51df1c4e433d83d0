package ports

import "context"

// TxRunner executes fn inside a single database transaction. The stores
// passed to fn are bound to that transaction: if fn returns an error, or the
// commit fails, every write made through them is rolled back.
type TxRunner interface {
	Run(ctx context.Context, fn func(accounts AccountStore, profiles ProfileStore) error) error
}
