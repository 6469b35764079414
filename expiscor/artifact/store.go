// Package artifact persists per-source schema and snapshot files under a
// caller-supplied root, locally or in S3.
package artifact

import (
	"context"
	"io"
)

// SchemaFileName returns the persisted schema artifact name for a data
// source.
func SchemaFileName(dataSourceName string) string {
	return "ds_schema_" + dataSourceName + ".xml"
}

// SnapshotFileName returns the persisted snapshot artifact name for a data
// source.
func SnapshotFileName(dataSourceName string) string {
	return "ds_snapshot_" + dataSourceName + ".xml"
}

// Store reads and writes named artifacts under one root.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
}
