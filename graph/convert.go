package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/caseschema/vocabulary/uco"
)

// Source identifies triples produced by record conversion.
const Source = "caseschema.record"

// extensionPrefix carries record keys with no registered predicate.
const extensionPrefix = "case.extension."

// ErrMissingID is returned for a record or nested object without an @id.
var ErrMissingID = errors.New("record has no @id")

// collectionPredicates are always rebuilt as arrays.
var collectionPredicates = map[string]bool{
	uco.InvestigativeAction: true,
	uco.Observables:         true,
	uco.Subjects:            true,
	uco.PhysicalEvidence:    true,
	uco.DigitalEvidence:     true,
	uco.SystemMonitoring:    true,
	uco.UserActivity:        true,
}

// Converter turns records into triples.
type Converter struct {
	now func() time.Time
}

// NewConverter returns a converter stamping triples with the wall clock.
func NewConverter() *Converter {
	return &Converter{now: time.Now}
}

// FromRecord converts a JSON-LD investigation record (any value that
// marshals to a JSON object) into triples. Nested objects become entities
// of their own, linked from the parent by the field's predicate. The
// @context block is not converted. An entity embedded more than once (the
// same @id) is converted the first time only.
func (c *Converter) FromRecord(record any) ([]message.Triple, error) {
	obj, err := normalize(record)
	if err != nil {
		return nil, err
	}
	var out []message.Triple
	if err := c.entity(obj, c.now(), map[string]bool{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Converter) entity(obj map[string]any, ts time.Time, seen map[string]bool, out *[]message.Triple) error {
	id, _ := obj["@id"].(string)
	if id == "" {
		return ErrMissingID
	}
	seen[id] = true

	for _, key := range slices.Sorted(maps.Keys(obj)) {
		if key == "@id" || key == "@context" {
			continue
		}
		pred := predicateFor(key)
		values, ok := obj[key].([]any)
		if !ok {
			values = []any{obj[key]}
		}
		for _, v := range values {
			object := v
			if nested, isObj := v.(map[string]any); isObj {
				nestedID, _ := nested["@id"].(string)
				if !seen[nestedID] {
					if err := c.entity(nested, ts, seen, out); err != nil {
						return fmt.Errorf("%s.%s: %w", id, key, err)
					}
				}
				object = nestedID
			}
			*out = append(*out, message.Triple{
				Subject:    id,
				Predicate:  pred,
				Object:     object,
				Source:     Source,
				Timestamp:  ts,
				Confidence: 1.0,
			})
		}
	}
	return nil
}

// ToRecord rebuilds the record rooted at id from the store. Objects that are
// themselves subjects in the store are expanded into nested objects.
func ToRecord(s *Store, id string) (map[string]any, error) {
	if !s.HasSubject(id) {
		return nil, fmt.Errorf("entity %s: not in store", id)
	}
	rec := rebuild(s, id, map[string]bool{})
	ctx := map[string]any{}
	for _, e := range uco.Context() {
		ctx[e.Prefix] = e.IRI
	}
	rec["@context"] = ctx
	return rec, nil
}

func rebuild(s *Store, id string, visiting map[string]bool) map[string]any {
	visiting[id] = true
	defer delete(visiting, id)

	rec := map[string]any{"@id": id}
	for _, t := range s.Match(id, "", nil) {
		field := fieldFor(t.Predicate)
		value := t.Object
		if ref, isStr := value.(string); isStr && ref != id && !visiting[ref] && s.HasSubject(ref) {
			value = rebuild(s, ref, visiting)
		}

		existing, seen := rec[field]
		switch {
		case collectionPredicates[t.Predicate]:
			list, _ := existing.([]any)
			rec[field] = append(list, value)
		case seen:
			if list, isList := existing.([]any); isList {
				rec[field] = append(list, value)
			} else {
				rec[field] = []any{existing, value}
			}
		default:
			rec[field] = value
		}
	}
	return rec
}

// LoadRecord converts a record and adds its triples to the store, returning
// the record id.
func (c *Converter) LoadRecord(s *Store, record any) (string, error) {
	obj, err := normalize(record)
	if err != nil {
		return "", err
	}
	triples, err := c.FromRecord(obj)
	if err != nil {
		return "", err
	}
	s.Add(triples...)
	return obj["@id"].(string), nil
}

func predicateFor(field string) string {
	if p, ok := uco.FieldPredicate(field); ok {
		return p
	}
	return extensionPrefix + field
}

func fieldFor(predicate string) string {
	if f, ok := uco.PredicateField(predicate); ok {
		return f
	}
	if f, ok := strings.CutPrefix(predicate, extensionPrefix); ok {
		return f
	}
	return predicate
}

func normalize(record any) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}
