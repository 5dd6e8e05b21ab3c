package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. a first name with no letters or digits in it).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by repo functions when a write would violate a
// unique slug index, typically because a concurrent writer claimed the same
// slug between the uniqueness snapshot and the insert.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
