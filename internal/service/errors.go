package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the id is unknown to the store (never created,
	// or already purged).
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyDeleted means a soft delete hit a record that is
	// already in the trash.
	ErrAlreadyDeleted = errors.New("record already in trash")
	// ErrNotDeleted means a restore or purge hit a record that is not
	// in the trash.
	ErrNotDeleted = errors.New("record not in trash")
	// ErrQuotaExceeded means an upload would push the tenant over its
	// storage quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// StorageDeleteError reports a failed physical object deletion. While
// the blob survives, the link rows referencing it survive too.
type StorageDeleteError struct {
	Key string
	Err error
}

func (e *StorageDeleteError) Error() string {
	return fmt.Sprintf("delete object %s: %v", e.Key, e.Err)
}

func (e *StorageDeleteError) Unwrap() error {
	return e.Err
}
