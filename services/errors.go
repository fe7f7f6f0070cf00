package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrWorkerTypeInUse is returned when deleting a worker type that time
	// entries still reference.
	ErrWorkerTypeInUse = errors.New("worker type is still used by time entries")

	// ErrEmailNotConfigured is returned when no sender address is set.
	ErrEmailNotConfigured = errors.New("email settings not configured: set a sender address and SMTP credentials")

	// ErrNotAnImage is returned for logo uploads that do not sniff as an image.
	ErrNotAnImage = errors.New("file must be an image")
)

// NotFoundError names the entity that could not be found (or is not owned
// by the caller).
type NotFoundError struct {
	Entity string
}

// NotFound returns a *NotFoundError for entity, e.g. "Project".
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// WorkerTypeInUseError carries the number of referencing time entries.
type WorkerTypeInUseError struct {
	Entries int64
}

func (e *WorkerTypeInUseError) Error() string {
	return fmt.Sprintf("worker type is still used by %d time entries", e.Entries)
}

func (e *WorkerTypeInUseError) Is(target error) bool {
	return target == ErrWorkerTypeInUse
}

// EmailError is a failed, non-retried offer delivery.
type EmailError struct {
	Recipient string
	Err       error
}

func (e *EmailError) Error() string {
	return fmt.Sprintf("failed to send email to %s: %v", e.Recipient, e.Err)
}

func (e *EmailError) Unwrap() error {
	return e.Err
}
