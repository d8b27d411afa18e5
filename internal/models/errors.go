package models

import "errors"

// Domain error kinds. Repositories and services wrap these with context;
// handlers map them to HTTP statuses with errors.Is.
var (
	// ErrNotFound signals a missing account, order, menu item or category.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials signals a failed password comparison.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden signals an action on a resource the caller does not own.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict signals a state conflict, e.g. a delivery man already busy.
	ErrConflict = errors.New("conflict")
	// ErrNoCapacity signals that no delivery man is available for assignment.
	ErrNoCapacity = errors.New("no capacity")
)
