// Package common defines shared constants and sentinel errors used across
// client and server layers of SmartDrive. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Validation errors.
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("user already exists")

	// Auth errors. ErrInvalidCredentials is returned for both unknown users
	// and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	// Storage errors.
	ErrStorageFailure = errors.New("storage failure")
)

// ErrInvalidUsername rejects usernames that would break the owner/file_name
// storage key layout. It matches ErrInvalidInput.
var ErrInvalidUsername = fmt.Errorf("%w: username must not contain '/'", ErrInvalidInput)

// StorageError carries a failed blob or metadata store call together with
// the provider error. It matches ErrStorageFailure via errors.Is.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorageFailure }

// NewStorageError wraps err as a StorageError. A nil err yields nil.
func NewStorageError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Key: key, Err: err}
}

// WipeByteArray overwrites the contents of b with zeros. It is used to drop
// passwords from memory once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
