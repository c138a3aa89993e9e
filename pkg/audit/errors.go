package audit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a name lookup has no match.
	ErrNotFound = errors.New("not found")

	// ErrContactNotFound is returned by Entity.FindContact. It wraps ErrNotFound.
	ErrContactNotFound = fmt.Errorf("contact %w", ErrNotFound)

	// ErrOutOfRange is returned when a 1-based selection is outside [1, Len()].
	ErrOutOfRange = errors.New("selection out of range")

	// ErrEmpty is returned by the views when the store holds no entities.
	ErrEmpty = errors.New("record store is empty")
)
