package expiscor

import "context"

// Properties is an opaque, non-persisted side map a caller may attach to a
// data source instance. It never travels with serialized artifacts.
type Properties map[string]any

func (p Properties) GetString(name string) string {
	if v, ok := p[name].(string); ok {
		return v
	}
	return ""
}

// DataSource is the CRUD capability contract shared by every backend.
// Backends that cannot honor an operation return an Unsupported error
// rather than guessing; embed UnsupportedTransactions for the common case
// of commit/rollback.
type DataSource interface {
	// Name identifies the source; it also names persisted artifacts.
	Name() string

	// Count returns the number of records the source currently holds.
	Count(ctx context.Context) (int64, error)

	// Fetch returns the source's records as a table, in source order.
	Fetch(ctx context.Context) (*Table, error)

	Add(ctx context.Context, doc *Document) error
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, doc *Document) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Shutdown releases the source's resources. It is safe to call once.
	Shutdown() error

	// Properties is the caller-attached side map; never persisted.
	Properties() Properties
}

// UnsupportedTransactions supplies Commit and Rollback for sources without
// transactional behavior. Embedding it keeps the contract satisfied while
// making the gap explicit to callers.
type UnsupportedTransactions struct{}

func (UnsupportedTransactions) Commit(context.Context) error {
	return Unsupported("commit")
}

func (UnsupportedTransactions) Rollback(context.Context) error {
	return Unsupported("rollback")
}
