// Package samples generates example investigation records that conform to
// the compiled schemas, for documentation and round-trip testing.
package samples

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

// SpecVersion is the UCO version stamped on generated objects.
const SpecVersion = "1.0.0"

// Record is one JSON-LD investigation record.
type Record map[string]any

// ID returns the record's @id.
func (r Record) ID() string {
	id, _ := r["@id"].(string)
	return id
}

// Generator builds example records.
type Generator struct {
	now   func() time.Time
	newID func(prefix string) string
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock fixes the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithIDs replaces the identifier source.
func WithIDs(newID func(prefix string) string) Option {
	return func(g *Generator) { g.newID = newID }
}

// NewGenerator returns a generator using the wall clock and random UUIDs.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		now: time.Now,
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns n example records for t.
func (g *Generator) Generate(t investigation.Type, n int) ([]Record, error) {
	tmpl, ok := templates[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", investigation.ErrUnknownType, string(t))
	}
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.record(tmpl, i))
	}
	return out, nil
}

func (g *Generator) record(tmpl template, index int) Record {
	now := g.now().UTC()
	ts := strfmt.DateTime(now)
	name := tmpl.name
	if index > 0 {
		name = fmt.Sprintf("%s #%d", name, index+1)
	}

	rec := Record{
		"@context":          contextValue(),
		"@id":               g.newID("investigation"),
		"@type":             "Investigation",
		"name":              name,
		"description":       tmpl.description,
		"createdBy":         g.identity("investigator", "core:IdentityAbstraction", tmpl.investigator, ts),
		"objectCreatedTime": ts,
		"specVersion":       SpecVersion,
		"investigativeActions": []Record{{
			"@id":               g.newID("action"),
			"@type":             "investigation:InvestigativeAction",
			"name":              tmpl.action.name,
			"description":       tmpl.action.description,
			"startTime":         strfmt.DateTime(now.Add(-tmpl.action.started)),
			"endTime":           strfmt.DateTime(now.Add(-tmpl.action.ended)),
			"status":            "Completed",
			"objectCreatedTime": ts,
			"specVersion":       SpecVersion,
		}},
	}

	for _, c := range tmpl.collections {
		items := make([]Record, 0, len(c.items))
		for _, it := range c.items {
			item := Record{
				"@id":               g.newID(c.idPrefix),
				"@type":             c.itemType,
				"objectCreatedTime": ts,
				"specVersion":       SpecVersion,
			}
			for k, v := range it {
				if ago, isOffset := v.(time.Duration); isOffset {
					v = strfmt.DateTime(now.Add(-ago))
				}
				item[k] = v
			}
			items = append(items, item)
		}
		rec[c.field] = items
	}

	if tmpl.victim != "" {
		rec["victimIdentification"] = g.identity("victim", "core:Identity", tmpl.victim, ts)
	}
	return rec
}

func (g *Generator) identity(prefix, typ, name string, ts strfmt.DateTime) Record {
	return Record{
		"@id":               g.newID(prefix),
		"@type":             typ,
		"name":              name,
		"objectCreatedTime": ts,
		"specVersion":       SpecVersion,
	}
}

func contextValue() map[string]string {
	ctx := map[string]string{}
	for _, e := range uco.Context() {
		ctx[e.Prefix] = e.IRI
	}
	return ctx
}

// FileName returns the JSONL file name for t, e.g. "cyber_intrusion_examples.jsonl".
func FileName(t investigation.Type) string {
	var sb strings.Builder
	for i, r := range string(t) {
		if unicode.IsUpper(r) && i > 0 {
			sb.WriteByte('_')
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String() + "_examples.jsonl"
}

// WriteJSONL writes one compact JSON record per line.
func WriteJSONL(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

// ReadJSONL decodes one record per non-blank line. A single JSON object
// spanning the whole input is accepted too.
func ReadJSONL(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var single Record
	if err := json.Unmarshal(trimmed, &single); err == nil {
		return []Record{single}, nil
	}

	var out []Record
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return out, nil
}
