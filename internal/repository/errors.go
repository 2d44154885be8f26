// Package repository defines the booking store and its backends.  Errors
// shared between backends are declared here so that the service layer can
// tell "no such booking" apart from a storage failure regardless of the
// backend in use.
package repository

import "errors"

// ErrNotFound is returned when a booking with the requested ID does not
// exist.  Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("booking not found")

