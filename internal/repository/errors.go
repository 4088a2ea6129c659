// Package repository defines error types that are reused across the data
// access layer.  These sentinel values allow higher layers such as handlers
// to distinguish a missing row from a failing database.
package repository

import "errors"

// ErrPlantNotFound is returned when no plant row matches the requested id.
// Handlers should translate this into an HTTP 404 response.
var ErrPlantNotFound = errors.New("plant not found")
