package database

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage keeps values in process memory. A positive quota caps the
// total size of keys plus values in bytes, mirroring the capacity limit of
// browser storage; writes past the cap fail with ErrQuotaExceeded and leave
// the previous value in place.
//
// It also backs the session-scoped admin flag, which must not outlive the
// process.
type MemoryStorage struct {
	mu    sync.Mutex
	data  map[string]string
	used  int
	quota int
}

func NewMemoryStorage(quota int) *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string), quota: quota}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(key) + len(value)
	if old, ok := m.data[key]; ok {
		used -= len(key) + len(old)
	}
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}
	m.data[key] = value
	m.used = used
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.data[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryStorage) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Used reports the bytes currently counted against the quota.
func (m *MemoryStorage) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}

func (m *MemoryStorage) Close() error { return nil }
