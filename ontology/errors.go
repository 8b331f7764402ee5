package ontology

import "errors"

var (
	// ErrNotFound is returned when a class or property is not in the catalog.
	ErrNotFound = errors.New("not found")

	// ErrInvalidClass is returned when a class definition is malformed.
	ErrInvalidClass = errors.New("invalid class")

	// ErrInvalidProperty is returned when a property definition is malformed.
	ErrInvalidProperty = errors.New("invalid property")
)
