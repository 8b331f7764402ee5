// Package output writes compiled schema documents and example records to disk.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/samples"
	"github.com/c360studio/caseschema/schema"
)

// Format is the serialization used for schema documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// BaseName is the stem of the base schema file.
const BaseName = "base_investigation"

// DefaultIndent is the JSON indent width.
const DefaultIndent = 2

// ErrUnknownFormat is returned for a format other than json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension, with dot.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

const yamlHeader = `# CASE/UCO investigation schema (JSON Schema Draft-07)
# Generated by caseschema. DO NOT EDIT.
`

// Writer writes documents into a directory.
type Writer struct {
	dir    string
	format Format
	indent int
}

// Option configures a Writer.
type Option func(*Writer)

// WithFormat selects the document format.
func WithFormat(f Format) Option {
	return func(w *Writer) { w.format = f }
}

// WithIndent sets the JSON indent width. Values below zero are ignored.
func WithIndent(n int) Option {
	return func(w *Writer) {
		if n >= 0 {
			w.indent = n
		}
	}
}

// NewWriter returns a writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, format: FormatJSON, indent: DefaultIndent}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// FileName returns the file name for an investigation type's schema,
// e.g. "cyberintrusion_investigation.json".
func (w *Writer) FileName(t investigation.Type) string {
	return strings.TrimSuffix(t.FileName(), ".json") + w.format.Extension()
}

// WriteType writes the schema for t and returns the file path.
func (w *Writer) WriteType(t investigation.Type, doc *schema.Document) (string, error) {
	return w.write(w.FileName(t), doc)
}

// WriteBase writes the base schema file.
func (w *Writer) WriteBase(doc *schema.Document) (string, error) {
	return w.write(BaseName+w.format.Extension(), doc)
}

// WriteNamed writes a document under a caller-chosen stem, used for combined
// schemas.
func (w *Writer) WriteNamed(name string, doc *schema.Document) (string, error) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" || strings.ContainsAny(stem, `/\`) {
		return "", fmt.Errorf("invalid document name %q", name)
	}
	return w.write(stem+w.format.Extension(), doc)
}

func (w *Writer) write(name string, doc *schema.Document) (string, error) {
	data, err := Encode(doc, w.format, w.indent)
	if err != nil {
		return "", err
	}
	return w.writeFile(name, data)
}

func (w *Writer) writeFile(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Encode serializes a document. JSON output ends with a newline and does not
// escape HTML characters.
func Encode(doc *schema.Document, f Format, indent int) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", indent))
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return append([]byte(yamlHeader+"\n"), data...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// ReadDocument loads a schema document, choosing the decoder by extension.
func ReadDocument(path string) (*schema.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	var doc schema.Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}
	return &doc, nil
}

// ReadRaw loads a schema file without mapping it onto schema.Document, so
// keywords the compiler never emits (enum, pattern, additionalProperties...)
// are kept. The result is a JSON object as map[string]any.
func ReadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("schema %s: not an object", path)
	}
	return raw, nil
}

// WriteExamples writes records for t as JSON Lines into dir and returns the
// file path.
func WriteExamples(dir string, t investigation.Type, records []samples.Record) (string, error) {
	var buf bytes.Buffer
	if err := samples.WriteJSONL(&buf, records); err != nil {
		return "", err
	}
	w := &Writer{dir: dir}
	return w.writeFile(samples.FileName(t), buf.Bytes())
}
