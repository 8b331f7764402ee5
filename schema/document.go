package schema

import (
	"maps"
	"slices"
	"strings"
)

// Document is a compiled top-level schema.
type Document struct {
	Schema      string             `json:"$schema" yaml:"$schema"`
	Type        string             `json:"type" yaml:"type"`
	Properties  map[string]*Schema `json:"properties" yaml:"properties"`
	Required    []string           `json:"required" yaml:"required"`
	Definitions map[string]*Schema `json:"definitions" yaml:"definitions"`
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	return &Document{
		Schema:      d.Schema,
		Type:        d.Type,
		Properties:  cloneSchemas(d.Properties),
		Required:    slices.Clone(d.Required),
		Definitions: cloneSchemas(d.Definitions),
	}
}

// PropertyNames returns the top-level property names, sorted.
func (d *Document) PropertyNames() []string {
	return slices.Sorted(maps.Keys(d.Properties))
}

// DefinitionNames returns the definition keys, sorted.
func (d *Document) DefinitionNames() []string {
	return slices.Sorted(maps.Keys(d.Definitions))
}

// DefinitionKey converts a namespace-qualified class name into a
// definitions key: "core:UcoObject" becomes "core_UcoObject". Names without
// a prefix are returned unchanged.
func DefinitionKey(name string) string {
	return strings.ReplaceAll(name, ":", "_")
}

// RefFor returns the local reference to the definition for a class or range name.
func RefFor(name string) string {
	return "#/definitions/" + DefinitionKey(name)
}

const localRefPrefix = "#/definitions/"

// DanglingRefs returns the sorted, de-duplicated definition keys that are
// referenced somewhere in the document but not defined.
func DanglingRefs(d *Document) []string {
	missing := map[string]struct{}{}
	check := func(s *Schema) {
		key, ok := strings.CutPrefix(s.Ref, localRefPrefix)
		if !ok {
			return
		}
		if _, defined := d.Definitions[key]; !defined {
			missing[key] = struct{}{}
		}
	}
	for _, s := range d.Properties {
		s.walk(check)
	}
	for _, s := range d.Definitions {
		s.walk(check)
	}
	return slices.Sorted(maps.Keys(missing))
}

// WithBasicDefinitions returns a copy of d with the primitive definitions
// that bare-named ranges refer to ("string" and "xsd_dateTime"). Instance
// validation needs them; compiled documents leave them out.
func WithBasicDefinitions(d *Document) *Document {
	out := d.Clone()
	if out.Definitions == nil {
		out.Definitions = map[string]*Schema{}
	}
	out.Definitions["string"] = &Schema{Type: "string"}
	out.Definitions[DefinitionKey("xsd:dateTime")] = DateTime()
	return out
}
