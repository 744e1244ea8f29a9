package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"furuth/database"
)

// decodeList parses a stored collection. Anything that is not a JSON array
// of T is reported as an error; callers decide whether that is corruption
// to heal.
func decodeList[T any](raw string) ([]T, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || data[0] != '[' {
		return nil, errNotArray
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// writeConfirmed stores value under key and reads it back. A write that
// does not read back as a non-empty value is a failed save.
func writeConfirmed(ctx context.Context, storage database.Storage, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &SaveError{Key: key, Err: fmt.Errorf("encode: %w", err)}
	}
	if err := storage.Set(ctx, key, string(data)); err != nil {
		return &SaveError{Key: key, Err: err}
	}
	stored, ok, err := storage.Get(ctx, key)
	if err != nil {
		return &SaveError{Key: key, Err: err}
	}
	if !ok || stored == "" {
		return &SaveError{Key: key, Err: ErrSaveNotConfirmed}
	}
	return nil
}
