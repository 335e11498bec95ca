package types

import "errors"

// Shelf model errors.
var (
	ErrUnregisteredOrigin     = errors.New("field dragged from unregistered source type to encoding shelf")
	ErrInvalidShelfID         = errors.New("invalid shelf id")
	ErrInvalidChannel         = errors.New("invalid channel")
	ErrInvalidAction          = errors.New("invalid shelf action")
	ErrNegativeWildcardIndex  = errors.New("wildcard shelf index must not be negative")
	ErrDuplicateWildcardIndex = errors.New("duplicate wildcard shelf index")
)

// History backend errors.
var (
	ErrBackendDetached = errors.New("history backend is detached")
	ErrAlreadyAttached = errors.New("history backend is already attached")
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidName     = errors.New("invalid name")
)
