// Package validation checks schema documents against the Draft-07
// meta-schema and investigation records against compiled documents.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/c360studio/caseschema/metrics"
	"github.com/c360studio/caseschema/schema"
)

const (
	metaSchemaURL = "http://json-schema.org/draft-07/schema"
	resourceBase  = "https://caseschema.invalid/schemas/"
)

// Validator validates instances against schema documents.
type Validator struct {
	assertFormat bool
	printer      *message.Printer
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

// Option configures a Validator.
type Option func(*Validator)

// WithFormatAssertion makes "format" keywords (date-time) assertions rather
// than annotations.
func WithFormatAssertion(enabled bool) Option {
	return func(v *Validator) { v.assertFormat = enabled }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// WithMetrics records validation outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(v *Validator) { v.metrics = m }
}

// New returns a validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		printer: message.NewPrinter(language.English),
		logger:  slog.Default(),
		metrics: metrics.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Compiled is a document prepared for repeated instance validation.
type Compiled struct {
	v   *Validator
	sch *jsonschema.Schema
}

// Compile prepares doc for validation. Documents with dangling references
// are rejected with ErrDanglingReference.
func (v *Validator) Compile(doc *schema.Document) (*Compiled, error) {
	if missing := schema.DanglingRefs(doc); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDanglingReference, strings.Join(missing, ", "))
	}
	return v.CompileRaw(doc)
}

// CompileRaw prepares a schema given as any value that marshals to JSON,
// typically a schema file decoded into map[string]any. Every Draft-07
// keyword in it is enforced, including those schema.Document does not model.
func (v *Validator) CompileRaw(raw any) (*Compiled, error) {
	res, err := toJSONValue(raw)
	if err != nil {
		return nil, err
	}

	c := v.newCompiler()
	url := resourceBase + "document.json"
	if err := c.AddResource(url, res); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Compiled{v: v, sch: sch}, nil
}

// Validate checks one decoded JSON instance. Violations are returned as *Error.
func (c *Compiled) Validate(instance any) error {
	inst, err := toJSONValue(instance)
	if err != nil {
		c.v.metrics.ObserveValidation(err, false)
		return err
	}
	return c.validateValue(inst)
}

// ValidateJSON checks one raw JSON instance.
func (c *Compiled) ValidateJSON(data []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		c.v.metrics.ObserveValidation(err, false)
		return fmt.Errorf("decode instance: %w", err)
	}
	return c.validateValue(inst)
}

func (c *Compiled) validateValue(inst any) error {
	err := c.sch.Validate(inst)
	if err == nil {
		c.v.metrics.ObserveValidation(nil, false)
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		c.v.metrics.ObserveValidation(err, false)
		return fmt.Errorf("validate: %w", err)
	}
	c.v.metrics.ObserveValidation(err, true)
	return &Error{Violations: c.v.violations(verr)}
}

// Validate compiles doc and validates one instance against it.
func (v *Validator) Validate(instance any, doc *schema.Document) error {
	c, err := v.Compile(doc)
	if err != nil {
		return err
	}
	return c.Validate(instance)
}

// CheckSchema validates doc itself against the Draft-07 meta-schema.
func (v *Validator) CheckSchema(doc *schema.Document) error {
	return v.CheckRaw(doc)
}

// CheckRaw validates a raw schema value against the Draft-07 meta-schema.
func (v *Validator) CheckRaw(raw any) error {
	inst, err := toJSONValue(raw)
	if err != nil {
		return err
	}
	meta, err := jsonschema.NewCompiler().Compile(metaSchemaURL)
	if err != nil {
		return fmt.Errorf("load meta-schema: %w", err)
	}
	err = meta.Validate(inst)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("check schema: %w", err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidSchema, &Error{Violations: v.violations(verr)})
}

func (v *Validator) newCompiler() *jsonschema.Compiler {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	if v.assertFormat {
		c.AssertFormat()
	}
	return c
}

// violations flattens the error tree into its leaves.
func (v *Validator) violations(root *jsonschema.ValidationError) []Violation {
	var out []Violation
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Violation{
				Location: "/" + strings.Join(e.InstanceLocation, "/"),
				Message:  e.ErrorKind.LocalizedString(v.printer),
			})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(root)
	slices.SortStableFunc(out, func(a, b Violation) int { return strings.Compare(a.Location, b.Location) })
	return slices.Compact(out)
}

// toJSONValue converts a Go value into the representation the validator
// expects (json.Number for numbers, map[string]any for objects).
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	out, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}
