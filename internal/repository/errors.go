// Package repository defines error values that are reused across
// multiple repositories.  These sentinel values allow handlers to
// distinguish failure scenarios without inspecting driver error text:
// ErrEmailExists maps to HTTP 409, the not-found values to 404.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update would violate the
// unique index on accounts.email.
var ErrEmailExists = errors.New("email already exists")

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// ErrClassificationExists is returned when a classification name is
// already taken.  Name uniqueness is enforced by the database so two
// concurrent submissions cannot both succeed.
var ErrClassificationExists = errors.New("classification name already exists")

// ErrVehicleNotFound is returned when no vehicle matches the lookup.
var ErrVehicleNotFound = errors.New("vehicle not found")
