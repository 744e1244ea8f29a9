package database

import (
	"context"
	"sync"
)

// FaultyStorage wraps another Storage and injects write faults per key, for
// exercising save-failure paths.
type FaultyStorage struct {
	Storage

	mu      sync.Mutex
	failSet map[string]error
	dropSet map[string]bool
}

func NewFaultyStorage(inner Storage) *FaultyStorage {
	return &FaultyStorage{
		Storage: inner,
		failSet: make(map[string]error),
		dropSet: make(map[string]bool),
	}
}

// FailSet makes every Set on key return err.
func (f *FaultyStorage) FailSet(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSet[key] = err
}

// DropWrites makes Set on key report success without storing anything, so
// the key reads back as absent.
func (f *FaultyStorage) DropWrites(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropSet[key] = true
}

// Heal removes every fault registered for key.
func (f *FaultyStorage) Heal(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failSet, key)
	delete(f.dropSet, key)
}

func (f *FaultyStorage) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	err, fail := f.failSet[key]
	drop := f.dropSet[key]
	f.mu.Unlock()

	switch {
	case fail:
		return err
	case drop:
		return f.Storage.Remove(ctx, key)
	default:
		return f.Storage.Set(ctx, key, value)
	}
}
