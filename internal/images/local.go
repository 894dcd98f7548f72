package images

import (
	"context"
	"os"
	"path/filepath"
	"sort"
)

// DirStorage keeps image files in a local directory.
type DirStorage struct {
	dir string
}

func NewDirStorage(dir string) (*DirStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirStorage{dir: dir}, nil
}

func (d *DirStorage) List(_ context.Context) ([]Asset, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}
	assets := make([]Asset, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		assets = append(assets, Asset{Name: e.Name(), URL: URLPrefix + e.Name()})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

func (d *DirStorage) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if os.IsNotExist(err) {
		return nil, ErrNoFile
	}
	return data, err
}

func (d *DirStorage) Write(_ context.Context, name string, data []byte) error {
	return os.WriteFile(filepath.Join(d.dir, name), data, 0o644)
}

func (d *DirStorage) Rename(_ context.Context, oldName, newName string) error {
	err := os.Rename(filepath.Join(d.dir, oldName), filepath.Join(d.dir, newName))
	if os.IsNotExist(err) {
		return ErrNoFile
	}
	return err
}

func (d *DirStorage) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(d.dir, name))
	if os.IsNotExist(err) {
		return ErrNoFile
	}
	return err
}
