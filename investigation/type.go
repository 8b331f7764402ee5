// Package investigation defines the investigation-type profiles: per-type
// ontology catalogs derived from a shared base catalog, plus the
// type-specific evidence collections that appear as top-level array
// properties in generated schemas.
package investigation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned for an investigation-type selector with no registered profile.
var ErrUnknownType = errors.New("unknown investigation type")

// Type is a closed set of investigation-type tags.
type Type string

const (
	CyberIntrusion    Type = "CyberIntrusion"
	Murder            Type = "Murder"
	ChildAbuse        Type = "ChildAbuse"
	InsiderThreat     Type = "InsiderThreat"
	CaseInvestigation Type = "CaseInvestigation"
)

// Types returns the investigation-specific selectors in emission order.
func Types() []Type {
	return []Type{CyberIntrusion, Murder, ChildAbuse, InsiderThreat}
}

// AllTypes returns every registered selector, including the generic
// CaseInvestigation profile.
func AllTypes() []Type {
	return append(Types(), CaseInvestigation)
}

// ParseType resolves a selector case-insensitively.
func ParseType(s string) (Type, error) {
	for _, t := range AllTypes() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Valid reports whether t names a registered profile.
func (t Type) Valid() bool {
	_, ok := builders[t]
	return ok
}

// String returns the selector tag.
func (t Type) String() string { return string(t) }

// FileName returns the conventional schema file name for the type,
// e.g. "cyberintrusion_investigation.json".
func (t Type) FileName() string {
	return strings.ToLower(string(t)) + "_investigation.json"
}
