package ontology

import (
	"fmt"
	"strings"
)

// Catalog is a register of classes and properties keyed by name.
//
// Registration is last-write-wins: re-registering a name replaces the entry
// but keeps its original position in iteration order. There is no deletion.
// A Catalog is not safe for concurrent mutation; builders own their catalog
// until they hand it out.
type Catalog struct {
	classes    map[string]Class
	classOrder []string
	props      map[string]Property
	propOrder  []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		classes: make(map[string]Class),
		props:   make(map[string]Property),
	}
}

// RegisterClass inserts or replaces a class.
func (c *Catalog) RegisterClass(class Class) {
	if _, ok := c.classes[class.name]; !ok {
		c.classOrder = append(c.classOrder, class.name)
	}
	c.classes[class.name] = class
}

// RegisterProperty inserts or replaces a property.
func (c *Catalog) RegisterProperty(prop Property) {
	if _, ok := c.props[prop.name]; !ok {
		c.propOrder = append(c.propOrder, prop.name)
	}
	c.props[prop.name] = prop
}

// Class looks up a class by name.
func (c *Catalog) Class(name string) (Class, error) {
	class, ok := c.classes[name]
	if !ok {
		return Class{}, fmt.Errorf("class %s: %w", name, ErrNotFound)
	}
	return class, nil
}

// Property looks up a property by name.
func (c *Catalog) Property(name string) (Property, error) {
	prop, ok := c.props[name]
	if !ok {
		return Property{}, fmt.Errorf("property %s: %w", name, ErrNotFound)
	}
	return prop, nil
}

func (c *Catalog) HasClass(name string) bool {
	_, ok := c.classes[name]
	return ok
}

func (c *Catalog) HasProperty(name string) bool {
	_, ok := c.props[name]
	return ok
}

// Classes returns all classes in first-registration order.
func (c *Catalog) Classes() []Class {
	out := make([]Class, 0, len(c.classOrder))
	for _, name := range c.classOrder {
		out = append(out, c.classes[name])
	}
	return out
}

// Properties returns all properties in first-registration order.
func (c *Catalog) Properties() []Property {
	out := make([]Property, 0, len(c.propOrder))
	for _, name := range c.propOrder {
		out = append(out, c.props[name])
	}
	return out
}

// Len returns the number of classes and properties.
func (c *Catalog) Len() (classes, properties int) {
	return len(c.classes), len(c.props)
}

// Clone returns an independent copy. Class and Property values are immutable,
// so copying the maps is enough.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		classes:    make(map[string]Class, len(c.classes)),
		classOrder: append([]string(nil), c.classOrder...),
		props:      make(map[string]Property, len(c.props)),
		propOrder:  append([]string(nil), c.propOrder...),
	}
	for k, v := range c.classes {
		out.classes[k] = v
	}
	for k, v := range c.props {
		out.props[k] = v
	}
	return out
}

// DiagnosticKind classifies a soft-invariant violation.
type DiagnosticKind string

const (
	// UnknownProperty: a class lists a property name that is not registered.
	UnknownProperty DiagnosticKind = "unknown_property"

	// UnresolvedRange: an object property range names no known class.
	UnresolvedRange DiagnosticKind = "unresolved_range"
)

// Diagnostic describes one soft-invariant violation. Diagnostics never block
// schema compilation.
type Diagnostic struct {
	Kind    DiagnosticKind
	Subject string
	Target  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s -> %s", d.Kind, d.Subject, d.Target)
}

// Diagnostics reports class property names that are not registered and
// object property ranges that resolve to no catalog class. Ranges in the
// xsd namespace, and prefixed ranges whose local name matches a catalog
// class, are considered resolved.
func (c *Catalog) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, class := range c.Classes() {
		for _, prop := range class.properties {
			if !c.HasProperty(prop) {
				out = append(out, Diagnostic{Kind: UnknownProperty, Subject: class.name, Target: prop})
			}
		}
	}
	for _, prop := range c.Properties() {
		if prop.kind != ObjectProperty || prop.rng == "" {
			continue
		}
		if !c.resolvesClass(prop.rng) {
			out = append(out, Diagnostic{Kind: UnresolvedRange, Subject: prop.name, Target: prop.rng})
		}
	}
	return out
}

func (c *Catalog) resolvesClass(rng string) bool {
	if strings.HasPrefix(rng, "xsd:") {
		return true
	}
	if c.HasClass(rng) {
		return true
	}
	if _, local, ok := strings.Cut(rng, ":"); ok {
		return c.HasClass(local)
	}
	return false
}
