// Package export serializes ontology catalogs and investigation records as RDF.
package export

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/vocabulary"

	"github.com/c360studio/caseschema/ontology"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// ErrUnsupportedFormat is returned for a format outside FormatRegistry.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat resolves a format name, accepting the registered file
// extensions as aliases.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, info := range FormatRegistry {
		if name == string(f) || name == strings.TrimPrefix(info.Extension, ".") {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Namespaces for record entities and for record fields with no registered
// predicate IRI.
const (
	EntityNamespace    = "https://caseschema.dev/entity/"
	ExtensionNamespace = "https://caseschema.dev/extension/"
)

// Well-known IRIs used by the catalog export.
const (
	RDFType           = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFSSubClassOf    = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	RDFSDomain        = "http://www.w3.org/2000/01/rdf-schema#domain"
	RDFSRange         = "http://www.w3.org/2000/01/rdf-schema#range"
	OWLClass          = "http://www.w3.org/2002/07/owl#Class"
	OWLObjectProperty = "http://www.w3.org/2002/07/owl#ObjectProperty"
	OWLDatatypeProp   = "http://www.w3.org/2002/07/owl#DatatypeProperty"
	XSDDateTime       = uco.XSDNamespace + "dateTime"
	XSDString         = uco.XSDNamespace + "string"
	XSDBoolean        = uco.XSDNamespace + "boolean"
	XSDInteger        = uco.XSDNamespace + "integer"
	XSDDecimal        = uco.XSDNamespace + "decimal"
	XSDDouble         = uco.XSDNamespace + "double"
)

// IRI is an object that serializes as a resource rather than a literal.
type IRI string

// Literal is a typed literal.
type Literal struct {
	Value    string
	Datatype string
}

// Value is one predicate-object pair of an entity.
type Value struct {
	Predicate string
	Object    any
}

// Entity is an RDF subject with its types and property values. All IRIs are
// fully expanded.
type Entity struct {
	IRI    string
	Types  []string
	Values []Value
}

// RDFExporter collects entities from catalogs and record graphs and
// serializes them.
type RDFExporter struct {
	profile  ProfileConfig
	catalog  *ontology.Catalog
	entities []*Entity
	index    map[string]*Entity
	prefixes map[string]string
}

// NewRDFExporter creates an exporter with the given profile.
func NewRDFExporter(profile Profile) *RDFExporter {
	return &RDFExporter{
		profile:  GetProfileConfig(profile),
		index:    make(map[string]*Entity),
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the namespace prefixes written by every exporter.
func defaultPrefixes() map[string]string {
	p := map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"owl":    "http://www.w3.org/2002/07/owl#",
		"entity": EntityNamespace,
		"ext":    ExtensionNamespace,
	}
	for prefix, ns := range uco.Prefixes() {
		// "case" and "investigation" share a namespace; keep the longer name.
		if prefix == "case" {
			continue
		}
		p[prefix] = ns
	}
	return p
}

// Len returns the number of collected entities.
func (e *RDFExporter) Len() int { return len(e.entities) }

// Entities returns the collected entities in insertion order.
func (e *RDFExporter) Entities() []Entity {
	out := make([]Entity, len(e.entities))
	for i, ent := range e.entities {
		out[i] = *ent
	}
	return out
}

// AddEntity adds an entity. Entities sharing an IRI are merged.
func (e *RDFExporter) AddEntity(entity Entity) {
	existing, ok := e.index[entity.IRI]
	if !ok {
		ent := &Entity{IRI: entity.IRI}
		e.index[entity.IRI] = ent
		e.entities = append(e.entities, ent)
		existing = ent
	}
	for _, t := range entity.Types {
		if !slices.Contains(existing.Types, t) {
			existing.Types = append(existing.Types, t)
		}
	}
	for _, v := range entity.Values {
		if !slices.ContainsFunc(existing.Values, func(x Value) bool { return reflect.DeepEqual(x, v) }) {
			existing.Values = append(existing.Values, v)
		}
	}
}

// AddCatalog adds the catalog's classes, and with ProfileFull its properties,
// as OWL declarations. The catalog is also used to resolve class names and
// infer supertypes for records added afterwards.
func (e *RDFExporter) AddCatalog(cat *ontology.Catalog) {
	e.catalog = cat
	for _, ent := range CatalogEntities(cat, e.profile.Name) {
		e.AddEntity(ent)
	}
}

// AddTriples adds record triples. Subjects become entity IRIs, objects that
// name another subject become links, and rdf type values become class IRIs.
func (e *RDFExporter) AddTriples(triples []message.Triple) {
	subjects := make(map[string]bool, len(triples))
	for _, t := range triples {
		subjects[t.Subject] = true
	}

	var order []string
	grouped := make(map[string]*Entity)
	for _, t := range triples {
		ent, ok := grouped[t.Subject]
		if !ok {
			ent = &Entity{IRI: EntityIRI(t.Subject)}
			grouped[t.Subject] = ent
			order = append(order, t.Subject)
		}
		if t.Predicate == uco.RDFType {
			if name, isStr := t.Object.(string); isStr {
				ent.Types = append(ent.Types, e.typeIRIs(name)...)
			}
			continue
		}
		ent.Values = append(ent.Values, Value{
			Predicate: PredicateIRI(t.Predicate),
			Object:    objectFor(t.Predicate, t.Object, subjects),
		})
	}
	for _, id := range order {
		e.AddEntity(*grouped[id])
	}
}

// typeIRIs resolves a record @type value. With a catalog and a profile that
// infers types, the class's superclasses are asserted too.
func (e *RDFExporter) typeIRIs(name string) []string {
	if e.catalog != nil {
		if class, err := e.catalog.Class(localName(name)); err == nil {
			if e.profile.InferSupertypes {
				return TypeHierarchy(e.catalog, class.Name())
			}
			return []string{class.URI()}
		}
	}
	if strings.Contains(name, ":") {
		return []string{uco.ExpandCURIE(name)}
	}
	return []string{uco.InvestigationNamespace + name}
}

// Export serializes all entities to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD()
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (e *RDFExporter) toTurtle() string {
	w := NewTurtleWriter()
	for prefix, iri := range e.prefixes {
		w.SetPrefix(prefix, iri)
	}
	w.WritePrefixes()

	for _, ent := range e.entities {
		if len(ent.Types) == 0 && len(ent.Values) == 0 {
			continue
		}
		w.WriteSubject(ent.IRI)
		for i, t := range ent.Types {
			w.WriteType(t, i == len(ent.Types)-1 && len(ent.Values) == 0)
		}
		for i, v := range ent.Values {
			w.WritePredicate(v.Predicate, v.Object, i == len(ent.Values)-1)
		}
		w.WriteBlank()
	}
	return w.String()
}

func (e *RDFExporter) toNTriples() string {
	w := NewNTriplesWriter()
	for _, ent := range e.entities {
		for _, t := range ent.Types {
			w.WriteTypeTriple(ent.IRI, t)
		}
		for _, v := range ent.Values {
			w.WriteTriple(ent.IRI, v.Predicate, v.Object)
		}
	}
	return w.String()
}

func (e *RDFExporter) toJSONLD() (string, error) {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)
	for _, ent := range e.entities {
		types := make([]string, len(ent.Types))
		for i, t := range ent.Types {
			types[i] = compact(e.prefixes, t)
		}
		props := make(map[string]any)
		for _, v := range ent.Values {
			key := compact(e.prefixes, v.Predicate)
			obj := jsonldObject(e.prefixes, v.Object)
			switch existing := props[key].(type) {
			case nil:
				props[key] = obj
			case []any:
				props[key] = append(existing, obj)
			default:
				props[key] = []any{existing, obj}
			}
		}
		w.AddNode(compact(e.prefixes, ent.IRI), types, props)
	}
	return w.Encode()
}

// EntityIRI maps a record @id to an IRI. Ids that already parse as absolute
// IRIs are kept.
func EntityIRI(id string) string {
	if u, err := url.Parse(id); err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "") {
		return id
	}
	return EntityNamespace + url.PathEscape(id)
}

// PredicateIRI maps a dotted predicate to its registered IRI. Unregistered
// predicates land in ExtensionNamespace.
func PredicateIRI(predicate string) string {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	if field, ok := strings.CutPrefix(predicate, "case.extension."); ok {
		return ExtensionNamespace + url.PathEscape(field)
	}
	return ExtensionNamespace + predicate
}

func objectFor(predicate string, obj any, subjects map[string]bool) any {
	s, isStr := obj.(string)
	if !isStr {
		return obj
	}
	if subjects[s] {
		return IRI(EntityIRI(s))
	}
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.DataType == "datetime" {
		return Literal{Value: s, Datatype: XSDDateTime}
	}
	return s
}

func localName(name string) string {
	if _, local, ok := strings.Cut(name, ":"); ok && !strings.Contains(name, "://") {
		return local
	}
	return name
}
