package export

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// TurtleWriter writes RDF in Turtle format. IRIs under a declared prefix are
// written as prefixed names.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a Turtle writer with no prefixes.
func NewTurtleWriter() *TurtleWriter {
	return &TurtleWriter{prefixes: make(map[string]string)}
}

// SetPrefix sets a namespace prefix.
func (w *TurtleWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
}

// WritePrefixes writes prefix declarations in prefix order.
func (w *TurtleWriter) WritePrefixes() {
	for _, prefix := range slices.Sorted(maps.Keys(w.prefixes)) {
		fmt.Fprintf(&w.sb, "@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	w.sb.WriteString("\n")
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(iri string) {
	fmt.Fprintf(&w.sb, "%s\n", w.term(iri))
}

// WriteType writes a type assertion.
func (w *TurtleWriter) WriteType(typeIRI string, last bool) {
	fmt.Fprintf(&w.sb, "    a %s%s\n", w.term(typeIRI), terminator(last))
}

// WritePredicate writes a predicate-object pair.
func (w *TurtleWriter) WritePredicate(predicateIRI string, object any, last bool) {
	fmt.Fprintf(&w.sb, "    %s %s%s\n", w.term(predicateIRI), w.object(object), terminator(last))
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func (w *TurtleWriter) term(iri string) string {
	if c := compact(w.prefixes, iri); c != iri {
		return c
	}
	return "<" + iri + ">"
}

func (w *TurtleWriter) object(obj any) string {
	switch v := obj.(type) {
	case IRI:
		return w.term(string(v))
	case Literal:
		return `"` + escapeString(v.Value) + `"^^` + w.term(v.Datatype)
	default:
		lit := literalOf(obj)
		if lit.Datatype == XSDString {
			return `"` + escapeString(lit.Value) + `"`
		}
		return `"` + lit.Value + `"^^` + w.term(lit.Datatype)
	}
}

func terminator(last bool) string {
	if last {
		return " ."
	}
	return " ;"
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	sb strings.Builder
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter() *NTriplesWriter {
	return &NTriplesWriter{}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(subject, predicate string, object any) {
	fmt.Fprintf(&w.sb, "<%s> <%s> %s .\n", subject, predicate, formatObjectNTriples(object))
}

// WriteTypeTriple writes a type assertion triple.
func (w *NTriplesWriter) WriteTypeTriple(subject, typeIRI string) {
	fmt.Fprintf(&w.sb, "<%s> <%s> <%s> .\n", subject, RDFType, typeIRI)
}

// String returns the accumulated N-Triples output.
func (w *NTriplesWriter) String() string {
	return w.sb.String()
}

func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case IRI:
		return "<" + string(v) + ">"
	case Literal:
		return `"` + escapeString(v.Value) + `"^^<` + v.Datatype + ">"
	default:
		lit := literalOf(obj)
		if lit.Datatype == XSDString {
			return `"` + escapeString(lit.Value) + `"`
		}
		return `"` + lit.Value + `"^^<` + lit.Datatype + ">"
	}
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON flattens Properties next to @id and @type.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	maps.Copy(m, n.Properties)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	return json.Marshal(m)
}

// UnmarshalJSON collects every key other than @id and @type into Properties.
// A single @type string is accepted.
func (n *JSONLDNode) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.ID, _ = raw["@id"].(string)
	switch t := raw["@type"].(type) {
	case string:
		n.Type = []string{t}
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok {
				n.Type = append(n.Type, s)
			}
		}
	}
	delete(raw, "@id")
	delete(raw, "@type")
	n.Properties = raw
	return nil
}

// JSONLDWriter writes RDF in JSON-LD format.
type JSONLDWriter struct {
	doc JSONLDDocument
}

// NewJSONLDWriter creates a new JSON-LD writer.
func NewJSONLDWriter() *JSONLDWriter {
	return &JSONLDWriter{
		doc: JSONLDDocument{
			Context: make(map[string]any),
			Graph:   make([]JSONLDNode, 0),
		},
	}
}

// SetContext adds prefixes to the @context.
func (w *JSONLDWriter) SetContext(prefixes map[string]string) {
	for k, v := range prefixes {
		w.doc.Context[k] = v
	}
}

// AddNode adds a node to the graph.
func (w *JSONLDWriter) AddNode(id string, types []string, properties map[string]any) {
	w.doc.Graph = append(w.doc.Graph, JSONLDNode{
		ID:         id,
		Type:       types,
		Properties: properties,
	})
}

// Encode returns the indented JSON-LD document.
func (w *JSONLDWriter) Encode() (string, error) {
	data, err := json.MarshalIndent(w.doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json-ld: %w", err)
	}
	return string(data), nil
}

// ParseJSONLD decodes a document produced by JSONLDWriter.
func ParseJSONLD(data []byte) (*JSONLDDocument, error) {
	var doc JSONLDDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json-ld: %w", err)
	}
	return &doc, nil
}

func jsonldObject(prefixes map[string]string, obj any) any {
	switch v := obj.(type) {
	case IRI:
		return map[string]any{"@id": compact(prefixes, string(v))}
	case Literal:
		return map[string]any{"@value": v.Value, "@type": compact(prefixes, v.Datatype)}
	case string, bool, float64, float32, int, int32, int64:
		return v
	default:
		return literalOf(obj).Value
	}
}

// compact rewrites an IRI as prefix:local when a prefix namespace matches and
// the remainder is a plain local name. The longest matching namespace wins.
func compact(prefixes map[string]string, iri string) string {
	best, bestNS := "", ""
	for prefix, ns := range prefixes {
		if len(ns) > len(bestNS) && strings.HasPrefix(iri, ns) {
			best, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return iri
	}
	local := iri[len(bestNS):]
	if !isLocalName(local) {
		return iri
	}
	return best + ":" + local
}

func isLocalName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9', r == '-':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// literalOf maps a plain Go value to a literal with its XSD datatype.
func literalOf(obj any) Literal {
	switch v := obj.(type) {
	case string:
		return Literal{Value: v, Datatype: XSDString}
	case bool:
		return Literal{Value: strconv.FormatBool(v), Datatype: XSDBoolean}
	case int:
		return Literal{Value: strconv.Itoa(v), Datatype: XSDInteger}
	case int32:
		return Literal{Value: strconv.FormatInt(int64(v), 10), Datatype: XSDInteger}
	case int64:
		return Literal{Value: strconv.FormatInt(v, 10), Datatype: XSDInteger}
	case float32:
		return floatLiteral(float64(v))
	case float64:
		return floatLiteral(v)
	case nil:
		return Literal{Value: "", Datatype: XSDString}
	default:
		return Literal{Value: fmt.Sprint(v), Datatype: XSDString}
	}
}

// floatLiteral writes whole numbers that a float64 holds exactly as
// xsd:integer. NaN and infinities have no xsd:decimal form and use xsd:double.
func floatLiteral(f float64) Literal {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return Literal{Value: doubleLexical(f), Datatype: XSDDouble}
	case math.Trunc(f) == f && math.Abs(f) < 1<<53:
		return Literal{Value: strconv.FormatInt(int64(f), 10), Datatype: XSDInteger}
	}
	return Literal{Value: strconv.FormatFloat(f, 'f', -1, 64), Datatype: XSDDecimal}
}

func doubleLexical(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f > 0:
		return "INF"
	}
	return "-INF"
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
