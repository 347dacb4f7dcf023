// Package files implements material storage on the local filesystem.
package files

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DiskStore writes uploaded files under a root directory, one subdirectory
// per material category. Paths handed back to callers are relative to the
// root so the root can move between environments.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload dir")
	}
	return &DiskStore{root: root}, nil
}

func (store *DiskStore) Save(category, name string, content io.Reader) (string, int64, error) {
	dir := filepath.Join(store.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, errors.Wrap(err, "creating category dir")
	}

	path := filepath.Join(category, name)
	f, err := os.Create(filepath.Join(store.root, path))
	if err != nil {
		return "", 0, errors.Wrap(err, "creating file")
	}
	defer f.Close()

	size, err := io.Copy(f, content)
	if err != nil {
		os.Remove(f.Name())
		return "", 0, errors.Wrap(err, "writing file")
	}
	return path, size, nil
}

func (store *DiskStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(store.root, path))
	return f, errors.Wrap(err, "opening file")
}

func (store *DiskStore) Delete(path string) error {
	err := os.Remove(filepath.Join(store.root, path))
	if os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(err, "removing file")
}
