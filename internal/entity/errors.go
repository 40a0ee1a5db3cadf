package entity

import "errors"

// Domain errors surfaced by the parsing stage.
var (
	ErrMissingReading = errors.New("entry has no reading element")
)
