// Package sqlite reads feed records out of a SQLite database. The driver is
// registered by the importer; cmd and tests use modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/storage"
)

// Source reads one table's rows through a bag-shaped column template. The
// feed direction is SQL to index, so the mutating half of the contract is
// unsupported.
type Source struct {
	expiscor.UnsupportedTransactions

	Path       string
	Table      string
	DriverName string

	name    string
	columns *expiscor.Bag
	db      *sql.DB
	props   expiscor.Properties
}

var _ expiscor.DataSource = (*Source)(nil)

// New creates a source over the table at path. columns names and types the
// columns to read, in emission order.
func New(name, path, table string, columns *expiscor.Bag) *Source {
	return &Source{
		Path:       path,
		Table:      table,
		DriverName: "sqlite",
		name:       name,
		columns:    columns,
		props:      make(expiscor.Properties),
	}
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Properties() expiscor.Properties {
	return s.props
}

func (s *Source) open(ctx context.Context) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open(s.DriverName, s.Path)
	if err != nil {
		return nil, expiscor.WrapError("open sqlite database "+s.Path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, expiscor.WrapError("ping sqlite database "+s.Path, err)
	}
	s.db = db
	return db, nil
}

func (s *Source) Count(ctx context.Context) (int64, error) {
	db, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	if !storage.ValidIdent(s.Table) {
		return 0, expiscor.Errorf("invalid table name %q", s.Table)
	}
	var n int64
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+storage.QuoteIdent(s.Table)).Scan(&n)
	if err != nil {
		return 0, expiscor.WrapError("count rows in "+s.Table, err)
	}
	return n, nil
}

func (s *Source) Fetch(ctx context.Context) (*expiscor.Table, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	query, err := storage.SelectQuery(s.Table, s.columns)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, expiscor.WrapError("query "+s.Table, err)
	}
	defer rows.Close()
	return storage.ScanTable(s.name, s.columns, rows)
}

func (s *Source) Add(context.Context, *expiscor.Document) error {
	return expiscor.Unsupported("add")
}

func (s *Source) Update(context.Context, *expiscor.Document) error {
	return expiscor.Unsupported("update")
}

func (s *Source) Delete(context.Context, *expiscor.Document) error {
	return expiscor.Unsupported("delete")
}

func (s *Source) Shutdown() error {
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	return db.Close()
}
