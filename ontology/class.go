// Package ontology models the subset of an OWL ontology needed to derive
// JSON Schema: named classes with superclass chains and property lists, and
// named properties with range and required metadata.
package ontology

import (
	"fmt"
	"net/url"
	"slices"
)

// PropertyKind distinguishes literal-valued from object-valued properties.
type PropertyKind string

const (
	// DatatypeProperty links an individual to a literal value.
	DatatypeProperty PropertyKind = "DatatypeProperty"

	// ObjectProperty links an individual to another individual.
	ObjectProperty PropertyKind = "ObjectProperty"
)

// Valid reports whether k is a known property kind.
func (k PropertyKind) Valid() bool {
	return k == DatatypeProperty || k == ObjectProperty
}

// Class is a named ontology class. Instances are immutable once built.
type Class struct {
	name         string
	uri          string
	description  string
	superclasses []string
	properties   []string
}

// NewClass validates and builds a class. Superclass entries may be class
// names in the same catalog or prefixed external references such as
// "observable:Observable".
func NewClass(name, uri, description string, superclasses, properties []string) (Class, error) {
	if name == "" {
		return Class{}, fmt.Errorf("%w: empty name", ErrInvalidClass)
	}
	if err := checkURI(uri); err != nil {
		return Class{}, fmt.Errorf("%w %s: %v", ErrInvalidClass, name, err)
	}
	return Class{
		name:         name,
		uri:          uri,
		description:  description,
		superclasses: slices.Clone(superclasses),
		properties:   slices.Clone(properties),
	}, nil
}

// MustClass is NewClass for static tables; it panics on invalid input.
func MustClass(name, uri, description string, superclasses, properties []string) Class {
	c, err := NewClass(name, uri, description, superclasses, properties)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Class) Name() string        { return c.name }
func (c Class) URI() string         { return c.uri }
func (c Class) Description() string { return c.description }

// Superclasses returns the ordered superclass list.
func (c Class) Superclasses() []string { return slices.Clone(c.superclasses) }

// Properties returns the property names in declaration order.
func (c Class) Properties() []string { return slices.Clone(c.properties) }

// HasProperty reports whether the class declares the named property.
func (c Class) HasProperty(name string) bool { return slices.Contains(c.properties, name) }

// Property is a named ontology property.
type Property struct {
	name        string
	uri         string
	description string
	kind        PropertyKind
	rng         string
	required    bool
}

// PropertyOption configures optional property metadata.
type PropertyOption func(*Property)

// WithRange sets the property range, e.g. "xsd:dateTime" or "core:IdentityAbstraction".
func WithRange(rng string) PropertyOption {
	return func(p *Property) { p.rng = rng }
}

// Required marks the property as required on instances.
func Required() PropertyOption {
	return func(p *Property) { p.required = true }
}

// NewProperty validates and builds a property.
func NewProperty(name, uri, description string, kind PropertyKind, opts ...PropertyOption) (Property, error) {
	if name == "" {
		return Property{}, fmt.Errorf("%w: empty name", ErrInvalidProperty)
	}
	if err := checkURI(uri); err != nil {
		return Property{}, fmt.Errorf("%w %s: %v", ErrInvalidProperty, name, err)
	}
	if !kind.Valid() {
		return Property{}, fmt.Errorf("%w %s: unknown kind %q", ErrInvalidProperty, name, kind)
	}
	p := Property{name: name, uri: uri, description: description, kind: kind}
	for _, opt := range opts {
		opt(&p)
	}
	return p, nil
}

// MustProperty is NewProperty for static tables; it panics on invalid input.
func MustProperty(name, uri, description string, kind PropertyKind, opts ...PropertyOption) Property {
	p, err := NewProperty(name, uri, description, kind, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Property) Name() string        { return p.name }
func (p Property) URI() string         { return p.uri }
func (p Property) Description() string { return p.description }
func (p Property) Kind() PropertyKind  { return p.kind }

// Range returns the property range, or "" when none is declared.
func (p Property) Range() string { return p.rng }

// IsRequired reports whether instances must carry the property.
func (p Property) IsRequired() bool { return p.required }

func checkURI(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse uri: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("uri %q is not absolute", raw)
	}
	return nil
}
