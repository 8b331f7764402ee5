package validation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/metrics"
	"github.com/c360studio/caseschema/samples"
	"github.com/c360studio/caseschema/schema"
)

func compiled(t *testing.T, typ investigation.Type) *schema.Document {
	t.Helper()
	doc, err := schema.NewCompiler().Compile(typ)
	require.NoError(t, err)
	return schema.WithBasicDefinitions(doc)
}

func TestCheckSchemaAllTypes(t *testing.T) {
	v := New()
	for _, typ := range investigation.AllTypes() {
		t.Run(string(typ), func(t *testing.T) {
			doc, err := schema.NewCompiler().Compile(typ)
			require.NoError(t, err)
			assert.NoError(t, v.CheckSchema(doc))
			assert.NoError(t, v.CheckSchema(schema.WithBasicDefinitions(doc)))
		})
	}
}

func TestCheckSchemaRejectsMalformed(t *testing.T) {
	doc := &schema.Document{
		Schema:     schema.Draft07,
		Type:       "object",
		Properties: map[string]*schema.Schema{"x": {Type: "strin"}},
	}
	err := New().CheckSchema(doc)
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.True(t, IsInvalid(err))
}

func TestDanglingReferenceRejected(t *testing.T) {
	doc, err := schema.NewCompiler().Compile(investigation.Murder)
	require.NoError(t, err)

	_, err = New().Compile(doc)
	assert.ErrorIs(t, err, ErrDanglingReference)
	assert.Contains(t, err.Error(), "xsd_dateTime")
}

func TestSamplesValidate(t *testing.T) {
	m := metrics.Nop()
	v := New(WithFormatAssertion(true), WithMetrics(m))
	gen := samples.NewGenerator()

	for _, typ := range investigation.AllTypes() {
		t.Run(string(typ), func(t *testing.T) {
			c, err := v.Compile(compiled(t, typ))
			require.NoError(t, err)

			recs, err := gen.Generate(typ, 2)
			require.NoError(t, err)
			for _, r := range recs {
				assert.NoError(t, c.Validate(r))
			}
		})
	}
	assert.Equal(t, float64(2*len(investigation.AllTypes())), testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("valid")))
}

func TestViolations(t *testing.T) {
	c, err := New().Compile(compiled(t, investigation.Murder))
	require.NoError(t, err)

	recs, err := samples.NewGenerator().Generate(investigation.Murder, 1)
	require.NoError(t, err)
	rec := recs[0]

	t.Run("missing required", func(t *testing.T) {
		bad := samples.Record{}
		for k, v := range rec {
			bad[k] = v
		}
		delete(bad, "createdBy")

		err := c.Validate(bad)
		var verr *Error
		require.ErrorAs(t, err, &verr)
		require.NotEmpty(t, verr.Violations)
		assert.Equal(t, "/", verr.Violations[0].Location)
		assert.Contains(t, verr.Error(), "createdBy")
	})

	t.Run("wrong item type", func(t *testing.T) {
		bad := samples.Record{}
		for k, v := range rec {
			bad[k] = v
		}
		bad["physicalEvidence"] = []samples.Record{{
			"@id":               "evidence-x",
			"@type":             "case:DigitalEvidence",
			"objectCreatedTime": "2025-01-01T00:00:00Z",
			"specVersion":       "1.0.0",
		}}

		err := c.Validate(bad)
		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "/physicalEvidence/0/@type", verr.Violations[0].Location)
	})

	t.Run("wrong context", func(t *testing.T) {
		bad := samples.Record{}
		for k, v := range rec {
			bad[k] = v
		}
		bad["@context"] = map[string]string{"case": "https://example.org"}
		assert.True(t, IsInvalid(c.Validate(bad)))
	})
}

func TestFormatAssertion(t *testing.T) {
	doc := compiled(t, investigation.Murder)
	recs, err := samples.NewGenerator().Generate(investigation.Murder, 1)
	require.NoError(t, err)
	rec := recs[0]
	rec["modifiedTime"] = "yesterday"

	strict, err := New(WithFormatAssertion(true)).Compile(doc)
	require.NoError(t, err)
	assert.True(t, IsInvalid(strict.Validate(rec)))
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	doc := compiled(t, investigation.CyberIntrusion)

	recs, err := samples.NewGenerator().Generate(investigation.CyberIntrusion, 3)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	f, err := os.Create(filepath.Join(dir, "nested", "good.jsonl"))
	require.NoError(t, err)
	require.NoError(t, samples.WriteJSONL(f, recs))
	require.NoError(t, f.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"@id": "x"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jsonl"), []byte("{\n"), 0o644))

	v := New()

	report, err := v.ValidateFiles(context.Background(), doc, []string{filepath.Join(dir, "**", "good.jsonl")})
	require.NoError(t, err)
	assert.Equal(t, FileReport{Files: 1, Instances: 3}, report)

	report, err = v.ValidateFiles(context.Background(), doc, []string{
		filepath.Join(dir, "**", "*.jsonl"),
		filepath.Join(dir, "bad.json"),
	})
	require.Error(t, err)
	assert.Equal(t, 3, report.Files)
	assert.Equal(t, 5, report.Instances)
	assert.Equal(t, 1, report.Invalid)
	assert.Contains(t, err.Error(), "bad.json")
	assert.Contains(t, err.Error(), "broken.jsonl:1")
}

func TestValidateFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "one.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, err := New().ValidateFiles(ctx, compiled(t, investigation.Murder), []string{path})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveFilesMissing(t *testing.T) {
	_, err := ResolveFiles([]string{filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, err)
}

func statusSchema() map[string]any {
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]any{
			"status": map[string]any{"type": "string", "enum": []any{"open", "closed"}},
			"count":  map[string]any{"type": "integer", "minimum": 1},
		},
		"additionalProperties": false,
	}
}

func TestCompileRawKeepsAllKeywords(t *testing.T) {
	v := New()
	require.NoError(t, v.CheckRaw(statusSchema()))

	c, err := v.CompileRaw(statusSchema())
	require.NoError(t, err)

	assert.NoError(t, c.Validate(map[string]any{"status": "open", "count": 2}))

	err = c.Validate(map[string]any{"status": "bogus", "count": -5, "extra": true})
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Violations), 3)
	locations := make([]string, len(verr.Violations))
	for i, vi := range verr.Violations {
		locations[i] = vi.Location
	}
	assert.Contains(t, locations, "/status")
	assert.Contains(t, locations, "/count")
	assert.Contains(t, locations, "/")
}

func TestCompiledValidateFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"status\":\"open\"}\n{\"status\":\"open\",\"extra\":1}\n"), 0o644))

	c, err := New().CompileRaw(statusSchema())
	require.NoError(t, err)

	report, err := c.ValidateFiles(context.Background(), []string{path})
	require.Error(t, err)
	assert.Equal(t, FileReport{Files: 1, Instances: 2, Invalid: 1}, report)
	assert.Contains(t, err.Error(), "records.jsonl:2")
}
