package services

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoBackup           = errors.New("no usable backup found")
	ErrNoValidProducts    = errors.New("no valid products found in the file")
	ErrInvalidImportFile  = errors.New("invalid file format: expected a JSON array of products")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSaveNotConfirmed   = errors.New("write was not confirmed by read-back")
	errNotArray           = errors.New("stored value is not a JSON array")
)

// SaveError means a collection may not have been persisted. The in-memory
// state that was being saved is kept so the user can retry.
type SaveError struct {
	Key string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Key, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
