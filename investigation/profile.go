package investigation

import (
	"fmt"

	"github.com/c360studio/caseschema/ontology"
)

// Field is one property of an inline collection item.
type Field struct {
	Name   string
	Type   string // JSON type: string, boolean, ...
	Format string // optional JSON Schema format, e.g. date-time
}

// Collection is a type-specific top-level array property of an investigation
// record. Items are either a reference to a definition (ItemRef) or an inline
// UcoObject extension whose @type is fixed to ItemType.
type Collection struct {
	Field       string
	Description string
	ItemRef     string
	ItemType    string
	Fields      []Field
}

// Profile bundles the catalog and collections for one investigation type.
type Profile struct {
	Type        Type
	Catalog     *ontology.Catalog
	Collections []Collection
}

// builder extends a clone of the base catalog for one investigation type.
type builder struct {
	extend      func(base *ontology.Catalog) *ontology.Catalog
	collections func() []Collection
}

var builders = map[Type]builder{
	CyberIntrusion:    {extend: extendCyberIntrusion, collections: cyberIntrusionCollections},
	Murder:            {extend: extendMurder, collections: murderCollections},
	ChildAbuse:        {extend: extendChildAbuse, collections: childAbuseCollections},
	InsiderThreat:     {extend: extendInsiderThreat, collections: insiderThreatCollections},
	CaseInvestigation: {extend: extendCaseInvestigation, collections: caseInvestigationCollections},
}

// NewProfile builds the profile for t from a fresh base catalog.
func NewProfile(t Type) (*Profile, error) {
	b, ok := builders[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	return &Profile{
		Type:        t,
		Catalog:     b.extend(BuildBaseCatalog()),
		Collections: b.collections(),
	}, nil
}

// Collection returns the collection declared for field, if any.
func (p *Profile) Collection(field string) (Collection, bool) {
	for _, c := range p.Collections {
		if c.Field == field {
			return c, true
		}
	}
	return Collection{}, false
}

// investigativeActions is shared by every profile.
func investigativeActions(kind string) Collection {
	return Collection{
		Field:       "investigativeActions",
		Description: "Actions taken during the " + kind + " investigation",
		ItemRef:     "investigation:InvestigativeAction",
	}
}
