package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/c360studio/semstreams/vocabulary"

	"github.com/c360studio/caseschema/ontology"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

// Profile determines how much of a catalog is exported.
type Profile string

const (
	// ProfileClasses exports class declarations and the subclass hierarchy.
	ProfileClasses Profile = "classes"

	// ProfileFull adds property declarations with domains and ranges, and
	// asserts inferred supertypes on record entities.
	ProfileFull Profile = "full"
)

// ProfileConfig holds the switches a profile turns on.
type ProfileConfig struct {
	Name              Profile
	Description       string
	IncludeProperties bool
	InferSupertypes   bool
}

// Profiles lists every supported profile.
var Profiles = map[Profile]ProfileConfig{
	ProfileClasses: {
		Name:        ProfileClasses,
		Description: "OWL classes with labels, comments and rdfs:subClassOf",
	},
	ProfileFull: {
		Name:              ProfileFull,
		Description:       "Classes plus object/datatype properties with rdfs:domain and rdfs:range",
		IncludeProperties: true,
		InferSupertypes:   true,
	},
}

// GetProfileConfig returns the configuration for a profile. Unknown profiles
// fall back to ProfileClasses.
func GetProfileConfig(profile Profile) ProfileConfig {
	if cfg, ok := Profiles[profile]; ok {
		return cfg
	}
	return Profiles[ProfileClasses]
}

// ParseProfile resolves a profile name.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Profiles[p]; !ok {
		return "", fmt.Errorf("unknown export profile %q", s)
	}
	return p, nil
}

// CatalogEntities converts a catalog into OWL entities for the profile.
func CatalogEntities(cat *ontology.Catalog, profile Profile) []Entity {
	cfg := GetProfileConfig(profile)

	var out []Entity
	for _, class := range cat.Classes() {
		ent := Entity{IRI: class.URI(), Types: []string{OWLClass}}
		ent.Values = append(ent.Values, Value{Predicate: vocabulary.RdfsLabel, Object: class.Name()})
		if d := class.Description(); d != "" {
			ent.Values = append(ent.Values, Value{Predicate: vocabulary.RdfsComment, Object: d})
		}
		for _, super := range class.Superclasses() {
			ent.Values = append(ent.Values, Value{Predicate: RDFSSubClassOf, Object: IRI(ClassIRI(cat, super))})
		}
		out = append(out, ent)
	}
	if !cfg.IncludeProperties {
		return out
	}

	for _, prop := range cat.Properties() {
		typ := OWLDatatypeProp
		if prop.Kind() == ontology.ObjectProperty {
			typ = OWLObjectProperty
		}
		ent := Entity{IRI: prop.URI(), Types: []string{typ}}
		ent.Values = append(ent.Values, Value{Predicate: vocabulary.RdfsLabel, Object: prop.Name()})
		if d := prop.Description(); d != "" {
			ent.Values = append(ent.Values, Value{Predicate: vocabulary.RdfsComment, Object: d})
		}
		for _, class := range cat.Classes() {
			if class.HasProperty(prop.Name()) {
				ent.Values = append(ent.Values, Value{Predicate: RDFSDomain, Object: IRI(class.URI())})
			}
		}
		if rng := prop.Range(); rng != "" {
			ent.Values = append(ent.Values, Value{Predicate: RDFSRange, Object: IRI(RangeIRI(cat, rng))})
		}
		out = append(out, ent)
	}
	return out
}

// ClassIRI resolves a class reference as written in a catalog: a class name
// known to the catalog, a prefixed name, or a bare UCO core name.
func ClassIRI(cat *ontology.Catalog, ref string) string {
	if class, err := cat.Class(localName(ref)); err == nil {
		return class.URI()
	}
	if strings.Contains(ref, ":") {
		return uco.ExpandCURIE(ref)
	}
	return uco.CoreNamespace + ref
}

// RangeIRI resolves a property range. Lower-case bare names are XSD
// datatypes.
func RangeIRI(cat *ontology.Catalog, rng string) string {
	if strings.HasPrefix(rng, "xsd:") {
		return uco.ExpandCURIE(rng)
	}
	if !strings.Contains(rng, ":") && !cat.HasClass(rng) && startsLower(rng) {
		return uco.XSDNamespace + rng
	}
	return ClassIRI(cat, rng)
}

// TypeHierarchy returns the IRI of a catalog class followed by the IRIs of
// all its superclasses, nearest first.
func TypeHierarchy(cat *ontology.Catalog, className string) []string {
	var out []string
	seen := map[string]bool{}
	queue := []string{className}
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]

		class, err := cat.Class(localName(ref))
		if err != nil {
			iri := ClassIRI(cat, ref)
			if !seen[iri] {
				seen[iri] = true
				out = append(out, iri)
			}
			continue
		}
		if seen[class.URI()] {
			continue
		}
		seen[class.URI()] = true
		out = append(out, class.URI())
		queue = append(queue, class.Superclasses()...)
	}
	return out
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
