package images

import (
	"context"
	"sort"
	"sync"
)

// MemStorage is the non-persistent fallback used when no image directory is
// configured.
type MemStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{files: make(map[string][]byte)}
}

func (m *MemStorage) List(_ context.Context) ([]Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	assets := make([]Asset, 0, len(m.files))
	for name := range m.files {
		assets = append(assets, Asset{Name: name, URL: URLPrefix + name})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

func (m *MemStorage) Read(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, ErrNoFile
	}
	return data, nil
}

func (m *MemStorage) Write(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return nil
}

func (m *MemStorage) Rename(_ context.Context, oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[oldName]
	if !ok {
		return ErrNoFile
	}
	delete(m.files, oldName)
	m.files[newName] = data
	return nil
}

func (m *MemStorage) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[name]; !ok {
		return ErrNoFile
	}
	delete(m.files, name)
	return nil
}
