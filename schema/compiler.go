package schema

import (
	"fmt"

	"github.com/c360studio/caseschema/investigation"
)

// Compiler turns investigation profiles into schema documents. It holds no
// state and is safe for concurrent use.
type Compiler struct{}

// NewCompiler returns a compiler.
func NewCompiler() *Compiler { return &Compiler{} }

// Compile builds the profile for t and compiles it. An unregistered selector
// returns investigation.ErrUnknownType.
func (c *Compiler) Compile(t investigation.Type) (*Document, error) {
	p, err := investigation.NewProfile(t)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", t, err)
	}
	return c.CompileProfile(p), nil
}

// CompileProfile compiles an already built profile. A profile without
// collections yields the core-only document.
func (c *Compiler) CompileProfile(p *investigation.Profile) *Document {
	props := map[string]*Schema{"@context": contextProperty()}
	required := []string{"@context"}

	for _, cp := range coreProperties {
		props[cp.name] = cp.schema()
		if cp.required {
			required = append(required, cp.name)
		}
	}

	// Type-specific properties win on name collision and are never required.
	for _, col := range p.Collections {
		props[col.Field] = collectionSchema(col)
	}

	return &Document{
		Schema:      Draft07,
		Type:        "object",
		Properties:  props,
		Required:    required,
		Definitions: baseDefinitions(),
	}
}

func collectionSchema(col investigation.Collection) *Schema {
	return &Schema{
		Type:        "array",
		Description: col.Description,
		Items:       itemSchema(col),
	}
}

func itemSchema(col investigation.Collection) *Schema {
	if col.ItemRef != "" {
		return Ref(RefFor(col.ItemRef))
	}
	props := map[string]*Schema{"@type": Constant(col.ItemType)}
	for _, f := range col.Fields {
		props[f.Name] = &Schema{Type: f.Type, Format: f.Format}
	}
	item := Extends(RefFor("core:UcoObject"), props)
	item.Type = "object"
	return item
}
