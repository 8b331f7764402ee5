package export_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/caseschema/export"
	"github.com/c360studio/caseschema/graph"
	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/samples"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

func baseExporter(profile export.Profile) *export.RDFExporter {
	e := export.NewRDFExporter(profile)
	e.AddCatalog(investigation.BuildBaseCatalog())
	return e
}

func entityByIRI(t *testing.T, e *export.RDFExporter, iri string) export.Entity {
	t.Helper()
	for _, ent := range e.Entities() {
		if ent.IRI == iri {
			return ent
		}
	}
	t.Fatalf("entity %s not exported", iri)
	return export.Entity{}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want export.Format
	}{
		{"turtle", export.FormatTurtle},
		{"TTL", export.FormatTurtle},
		{"nt", export.FormatNTriples},
		{" ntriples ", export.FormatNTriples},
		{"jsonld", export.FormatJSONLD},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := export.ParseFormat(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := export.ParseFormat("rdfxml")
	assert.True(t, errors.Is(err, export.ErrUnsupportedFormat))
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := baseExporter(export.ProfileClasses).Export("rdfxml")
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestCatalogClasses(t *testing.T) {
	e := baseExporter(export.ProfileClasses)
	require.Equal(t, 2, e.Len())

	inv := entityByIRI(t, e, uco.ClassInvestigation)
	assert.Equal(t, []string{export.OWLClass}, inv.Types)
	assert.Contains(t, inv.Values, export.Value{Predicate: vocabulary.RdfsLabel, Object: "Investigation"})
	assert.Contains(t, inv.Values, export.Value{Predicate: export.RDFSSubClassOf, Object: export.IRI(uco.ClassUcoObject)})

	obj := entityByIRI(t, e, uco.ClassUcoObject)
	assert.Contains(t, obj.Values, export.Value{Predicate: export.RDFSSubClassOf, Object: export.IRI(uco.ClassUcoThing)})
}

func TestCatalogFullProperties(t *testing.T) {
	e := baseExporter(export.ProfileFull)
	assert.Equal(t, 4, e.Len())

	createdBy := entityByIRI(t, e, uco.CoreNamespace+"createdBy")
	assert.Equal(t, []string{export.OWLObjectProperty}, createdBy.Types)
	assert.Contains(t, createdBy.Values, export.Value{Predicate: export.RDFSDomain, Object: export.IRI(uco.ClassUcoObject)})
	assert.Contains(t, createdBy.Values, export.Value{Predicate: export.RDFSRange, Object: export.IRI(uco.ClassIdentityAbstraction)})

	created := entityByIRI(t, e, uco.CoreNamespace+"objectCreatedTime")
	assert.Equal(t, []string{export.OWLDatatypeProp}, created.Types)
	assert.Contains(t, created.Values, export.Value{Predicate: export.RDFSRange, Object: export.IRI(export.XSDDateTime)})
}

func TestExportTurtle(t *testing.T) {
	out, err := baseExporter(export.ProfileClasses).Export(export.FormatTurtle)
	require.NoError(t, err)

	assert.Contains(t, out, "@prefix owl: <http://www.w3.org/2002/07/owl#> .")
	assert.Contains(t, out, "@prefix core: <"+uco.CoreNamespace+"> .")
	assert.Contains(t, out, "investigation:Investigation\n    a owl:Class ;")
	assert.Contains(t, out, `rdfs:label "Investigation" ;`)
	assert.Contains(t, out, "rdfs:subClassOf core:UcoObject .")
	assert.NotContains(t, out, "@prefix case:")
}

func TestExportNTriples(t *testing.T) {
	out, err := baseExporter(export.ProfileFull).Export(export.FormatNTriples)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, " ."), "line should end with ' .': %s", line)
	}
	assert.Contains(t, out, fmt.Sprintf("<%s> <%s> <%s> .", uco.ClassUcoObject, export.RDFType, export.OWLClass))
	assert.Contains(t, out, fmt.Sprintf("<%s> <%s> <%s> .", uco.CoreNamespace+"objectCreatedTime", export.RDFSRange, export.XSDDateTime))
}

func TestExportJSONLD(t *testing.T) {
	out, err := baseExporter(export.ProfileClasses).Export(export.FormatJSONLD)
	require.NoError(t, err)

	doc, err := export.ParseJSONLD([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, uco.CoreNamespace, doc.Context["core"])
	require.Len(t, doc.Graph, 2)

	var inv *export.JSONLDNode
	for i := range doc.Graph {
		if doc.Graph[i].ID == "investigation:Investigation" {
			inv = &doc.Graph[i]
		}
	}
	require.NotNil(t, inv)
	assert.Equal(t, []string{"owl:Class"}, inv.Type)
	assert.Equal(t, map[string]any{"@id": "core:UcoObject"}, inv.Properties["rdfs:subClassOf"])
	assert.Equal(t, "Investigation", inv.Properties["rdfs:label"])
}

func TestEscapedLiterals(t *testing.T) {
	e := export.NewRDFExporter(export.ProfileClasses)
	e.AddEntity(export.Entity{
		IRI:    export.EntityIRI("note-1"),
		Values: []export.Value{{Predicate: vocabulary.RdfsComment, Object: "line one\n\"quoted\""}},
	})

	out, err := e.Export(export.FormatNTriples)
	require.NoError(t, err)
	assert.Contains(t, out, `"line one\n\"quoted\""`)
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"whole float", 42.0, `"42"^^<` + export.XSDInteger + ">"},
		{"fraction", 2.5, `"2.5"^^<` + export.XSDDecimal + ">"},
		{"beyond exact integers", 1e20, `"100000000000000000000"^^<` + export.XSDDecimal + ">"},
		{"below int64 range", -1e19, `"-10000000000000000000"^^<` + export.XSDDecimal + ">"},
		{"not a number", math.NaN(), `"NaN"^^<` + export.XSDDouble + ">"},
		{"infinity", math.Inf(-1), `"-INF"^^<` + export.XSDDouble + ">"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := export.NewRDFExporter(export.ProfileClasses)
			e.AddEntity(export.Entity{
				IRI:    export.EntityIRI("measure-1"),
				Values: []export.Value{{Predicate: vocabulary.RdfsComment, Object: tt.value}},
			})
			out, err := e.Export(export.FormatNTriples)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestAddEntityMerges(t *testing.T) {
	e := export.NewRDFExporter(export.ProfileClasses)
	v := export.Value{Predicate: vocabulary.RdfsLabel, Object: "x"}
	e.AddEntity(export.Entity{IRI: "urn:x", Types: []string{export.OWLClass}, Values: []export.Value{v}})
	e.AddEntity(export.Entity{IRI: "urn:x", Types: []string{export.OWLClass}, Values: []export.Value{v}})

	require.Equal(t, 1, e.Len())
	ent := e.Entities()[0]
	assert.Len(t, ent.Types, 1)
	assert.Len(t, ent.Values, 1)
}

func TestEntityIRI(t *testing.T) {
	assert.Equal(t, export.EntityNamespace+"investigation-1", export.EntityIRI("investigation-1"))
	assert.Equal(t, "urn:uuid:1234", export.EntityIRI("urn:uuid:1234"))
	assert.Equal(t, "https://example.org/x", export.EntityIRI("https://example.org/x"))
	assert.Equal(t, export.EntityNamespace+"a%20b", export.EntityIRI("a b"))
}

func TestPredicateIRI(t *testing.T) {
	assert.Equal(t, uco.CoreNamespace+"name", export.PredicateIRI(uco.CoreName))
	assert.Equal(t, export.ExtensionNamespace+"caseNumber", export.PredicateIRI("case.extension.caseNumber"))
}

func TestExportRecord(t *testing.T) {
	n := 0
	gen := samples.NewGenerator(
		samples.WithClock(func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }),
		samples.WithIDs(func(prefix string) string {
			n++
			return fmt.Sprintf("%s-%d", prefix, n)
		}),
	)
	recs, err := gen.Generate(investigation.CyberIntrusion, 1)
	require.NoError(t, err)

	triples, err := graph.NewConverter().FromRecord(recs[0])
	require.NoError(t, err)

	profile, err := investigation.NewProfile(investigation.CyberIntrusion)
	require.NoError(t, err)

	e := export.NewRDFExporter(export.ProfileFull)
	e.AddCatalog(profile.Catalog)
	e.AddTriples(triples)

	inv := entityByIRI(t, e, export.EntityIRI(recs[0].ID()))
	assert.Equal(t, []string{uco.ClassInvestigation, uco.ClassUcoObject, uco.ClassUcoThing}, inv.Types)
	assert.Contains(t, inv.Values, export.Value{
		Predicate: uco.CoreNamespace + "objectCreatedTime",
		Object:    export.Literal{Value: "2024-01-15T10:00:00.000Z", Datatype: export.XSDDateTime},
	})

	creator, ok := recs[0]["createdBy"].(samples.Record)
	require.True(t, ok)
	assert.Contains(t, inv.Values, export.Value{
		Predicate: uco.CoreNamespace + "createdBy",
		Object:    export.IRI(export.EntityIRI(creator.ID())),
	})

	out, err := e.Export(export.FormatTurtle)
	require.NoError(t, err)
	assert.Contains(t, out, "entity:investigation-1\n    a investigation:Investigation ;")
	assert.Contains(t, out, `"2024-01-15T10:00:00.000Z"^^xsd:dateTime`)
}

func TestExportRecordWithoutCatalog(t *testing.T) {
	e := export.NewRDFExporter(export.ProfileClasses)
	c := graph.NewConverter()
	triples, err := c.FromRecord(map[string]any{
		"@id":   "evidence-1",
		"@type": "case:PhysicalEvidence",
		"name":  "Knife",
	})
	require.NoError(t, err)
	e.AddTriples(triples)

	ent := entityByIRI(t, e, export.EntityIRI("evidence-1"))
	assert.Equal(t, []string{uco.InvestigationNamespace + "PhysicalEvidence"}, ent.Types)
}
