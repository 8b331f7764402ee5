// Package schema compiles investigation-type profiles into JSON Schema
// (Draft-07) documents and combines compiled documents.
//
// Class inheritance is encoded structurally: "B extends A" becomes
//
//	{"allOf": [{"$ref": "#/definitions/A"}, {"type": "object", "properties": {...}}]}
//
// and never a deep merge. Cycles between definitions (an identity created by
// an identity) exist only as $ref strings and are never expanded.
package schema

import (
	"maps"
	"slices"
)

// Draft07 is the $schema identifier of every generated document.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// Schema is a JSON Schema fragment. Only the keywords the compiler emits are modelled.
type Schema struct {
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Const       any                `json:"const,omitempty" yaml:"const,omitempty"`
	Format      string             `json:"format,omitempty" yaml:"format,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	AllOf       []*Schema          `json:"allOf,omitempty" yaml:"allOf,omitempty"`
}

// Ref builds a reference fragment.
func Ref(target string) *Schema { return &Schema{Ref: target} }

// String builds a string fragment.
func String(description string) *Schema { return &Schema{Type: "string", Description: description} }

// DateTime builds a date-time string fragment.
func DateTime() *Schema { return &Schema{Type: "string", Format: "date-time"} }

// Constant builds a string fragment fixed to value.
func Constant(value string) *Schema { return &Schema{Type: "string", Const: value} }

// Object builds an object fragment over props.
func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

// Extends encodes "this fragment extends the definition at parentRef".
func Extends(parentRef string, props map[string]*Schema) *Schema {
	return &Schema{AllOf: []*Schema{Ref(parentRef), Object(props)}}
}

// Clone returns a deep copy.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Properties = cloneSchemas(s.Properties)
	out.Required = slices.Clone(s.Required)
	out.Items = s.Items.Clone()
	if s.AllOf != nil {
		out.AllOf = make([]*Schema, len(s.AllOf))
		for i, sub := range s.AllOf {
			out.AllOf[i] = sub.Clone()
		}
	}
	return &out
}

// walk visits s and every nested fragment.
func (s *Schema) walk(fn func(*Schema)) {
	if s == nil {
		return
	}
	fn(s)
	for _, k := range slices.Sorted(maps.Keys(s.Properties)) {
		s.Properties[k].walk(fn)
	}
	s.Items.walk(fn)
	for _, sub := range s.AllOf {
		sub.walk(fn)
	}
}

func cloneSchemas(in map[string]*Schema) map[string]*Schema {
	if in == nil {
		return nil
	}
	out := make(map[string]*Schema, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}
	return out
}
