// Package postgres reads feed records out of a PostgreSQL database through
// the pgx stdlib adapter.
package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
	"github.com/AlColeNS/search-expiscor-sub001/expiscor/storage"
)

// Source reads one table's rows through a bag-shaped column template,
// mirroring the sqlite source over a pgx connection.
type Source struct {
	expiscor.UnsupportedTransactions

	DSN   string
	Table string

	name    string
	columns *expiscor.Bag
	db      *sql.DB
	props   expiscor.Properties
}

var _ expiscor.DataSource = (*Source)(nil)

// New creates a source over the table reachable through dsn.
func New(name, dsn, table string, columns *expiscor.Bag) *Source {
	return &Source{
		DSN:     dsn,
		Table:   table,
		name:    name,
		columns: columns,
		props:   make(expiscor.Properties),
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
	cfg, err := pgx.ParseConfig(s.DSN)
	if err != nil {
		return nil, expiscor.WrapError("parse postgres DSN", err)
	}
	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, expiscor.WrapError("ping postgres database", err)
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
