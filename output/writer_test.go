package output

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/samples"
	"github.com/c360studio/caseschema/schema"
)

func compile(t *testing.T, typ investigation.Type) *schema.Document {
	t.Helper()
	doc, err := schema.NewCompiler().Compile(typ)
	require.NoError(t, err)
	return doc
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteTypeJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "schemas")
	w := NewWriter(dir)
	doc := compile(t, investigation.Murder)

	path, err := w.WriteType(investigation.Murder, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "murder_investigation.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"$schema\""), "expected two-space indent")
	assert.True(t, strings.HasSuffix(string(data), "}\n"))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, schema.Draft07, raw["$schema"])
}

func TestWriteIndent(t *testing.T) {
	w := NewWriter(t.TempDir(), WithIndent(4))
	path, err := w.WriteBase(compile(t, investigation.CyberIntrusion))
	require.NoError(t, err)
	assert.Equal(t, BaseName+".json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"$schema\"")
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			w := NewWriter(t.TempDir(), WithFormat(f))
			doc := compile(t, investigation.InsiderThreat)

			path, err := w.WriteType(investigation.InsiderThreat, doc)
			require.NoError(t, err)
			assert.Equal(t, "insiderthreat_investigation"+f.Extension(), filepath.Base(path))

			got, err := ReadDocument(path)
			require.NoError(t, err)

			want, err := json.Marshal(doc)
			require.NoError(t, err)
			have, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), string(have))
		})
	}
}

func TestYAMLHeader(t *testing.T) {
	data, err := Encode(compile(t, investigation.ChildAbuse), FormatYAML, DefaultIndent)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# CASE/UCO investigation schema"))
}

func TestWriteNamed(t *testing.T) {
	w := NewWriter(t.TempDir())
	path, err := w.WriteNamed("case_murder.json", compile(t, investigation.Murder))
	require.NoError(t, err)
	assert.Equal(t, "case_murder.json", filepath.Base(path))

	_, err = w.WriteNamed("../escape", compile(t, investigation.Murder))
	assert.Error(t, err)
}

func TestReadDocumentErrors(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = ReadDocument(bad)
	assert.Error(t, err)
}

func TestWriteExamples(t *testing.T) {
	recs, err := samples.NewGenerator().Generate(investigation.CyberIntrusion, 3)
	require.NoError(t, err)

	path, err := WriteExamples(t.TempDir(), investigation.CyberIntrusion, recs)
	require.NoError(t, err)
	assert.Equal(t, "cyber_intrusion_examples.jsonl", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		lines++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, 3, lines)
}

func TestReadRawKeepsUnmodelledKeywords(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "strict.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "type": "object",
  "properties": {"code": {"type": "string", "pattern": "^[A-Z]+$"}},
  "additionalProperties": false
}`), 0644))
	raw, err := ReadRaw(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, false, raw["additionalProperties"])
	code := raw["properties"].(map[string]any)["code"].(map[string]any)
	assert.Equal(t, "^[A-Z]+$", code["pattern"])

	yamlPath := filepath.Join(dir, "strict.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("type: object\nadditionalProperties: false\n"), 0644))
	raw, err = ReadRaw(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, false, raw["additionalProperties"])

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("null"), 0644))
	_, err = ReadRaw(empty)
	assert.Error(t, err)
}
