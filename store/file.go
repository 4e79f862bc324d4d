package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/infpro/storefront-api/models"
)

// FileCollection keeps a collection as an indented JSON array in one file.
type FileCollection[T any] struct {
	path string
}

func NewFileCollection[T any](path string) *FileCollection[T] {
	return &FileCollection[T]{path: path}
}

func (f *FileCollection[T]) Path() string {
	return f.path
}

func (f *FileCollection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers never see a partial array.
func (f *FileCollection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", f.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (f *FileCollection[T]) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", f.path, err)
	}
	return true, nil
}

// OpenFiles returns a Store backed by products.json, users.json and
// orders.json inside dir, creating dir when missing.
func OpenFiles(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		Products: NewFileCollection[models.Product](filepath.Join(dir, ProductsCollection+".json")),
		Users:    NewFileCollection[models.User](filepath.Join(dir, UsersCollection+".json")),
		Orders:   NewFileCollection[models.Order](filepath.Join(dir, OrdersCollection+".json")),
	}, nil
}
