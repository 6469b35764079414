package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Local stores artifacts as plain files in one directory.
type Local struct {
	Root string
}

// NewLocal ensures the directory exists and returns a store over it.
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create artifact directory %s", root)
	}
	return &Local{Root: root}, nil
}

func (s *Local) Put(_ context.Context, name string, r io.Reader) error {
	path := filepath.Join(s.Root, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create artifact %s", path)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return errors.Wrapf(err, "write artifact %s", path)
	}
	return errors.Wrapf(f.Close(), "close artifact %s", path)
}

func (s *Local) Get(_ context.Context, name string) (io.ReadCloser, error) {
	path := filepath.Join(s.Root, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open artifact %s", path)
	}
	return f, nil
}

func (s *Local) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.Root, name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "stat artifact %s", name)
}
