package validation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDanglingReference is returned when a document references definitions
	// it does not carry. Run schema.WithBasicDefinitions first.
	ErrDanglingReference = errors.New("dangling definition reference")

	// ErrInvalidSchema is returned when a document fails the Draft-07 meta-schema.
	ErrInvalidSchema = errors.New("invalid schema")
)

// Violation is one failed constraint.
type Violation struct {
	// Location is the JSON pointer of the offending instance value.
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (v Violation) String() string {
	return v.Location + ": " + v.Message
}

// Error reports every violation found in one instance.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// IsInvalid reports whether err carries instance violations.
func IsInvalid(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
