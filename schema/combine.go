package schema

import (
	"errors"
	"maps"
	"slices"
)

// ErrNothingToCombine is returned when Combine is called without documents.
var ErrNothingToCombine = errors.New("no documents to combine")

type combineOptions struct {
	unionProperties bool
}

// CombineOption configures Combine.
type CombineOption func(*combineOptions)

// WithPropertyUnion merges top-level properties (later documents win) and
// takes the order-preserving union of required names, instead of keeping
// only the first document's.
func WithPropertyUnion() CombineOption {
	return func(o *combineOptions) { o.unionProperties = true }
}

// Combine merges documents into a new one. By default the result keeps the
// first document's $schema, type, properties and required list, and unions
// the definitions of every document with later keys overwriting earlier
// ones. Inputs are not modified.
func Combine(docs []*Document, opts ...CombineOption) (*Document, error) {
	if len(docs) == 0 {
		return nil, ErrNothingToCombine
	}
	var o combineOptions
	for _, opt := range opts {
		opt(&o)
	}

	out := docs[0].Clone()
	if out.Definitions == nil {
		out.Definitions = map[string]*Schema{}
	}
	for _, d := range docs[1:] {
		maps.Copy(out.Definitions, cloneSchemas(d.Definitions))
		if !o.unionProperties {
			continue
		}
		if out.Properties == nil {
			out.Properties = map[string]*Schema{}
		}
		maps.Copy(out.Properties, cloneSchemas(d.Properties))
		for _, r := range d.Required {
			if !slices.Contains(out.Required, r) {
				out.Required = append(out.Required, r)
			}
		}
	}
	return out, nil
}
