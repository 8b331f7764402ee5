// Package generator runs a complete schema generation pass: it compiles every
// configured investigation type, writes the base, per-type and combined
// schemas, and produces validated example records.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/c360studio/caseschema/config"
	"github.com/c360studio/caseschema/graph"
	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/metrics"
	"github.com/c360studio/caseschema/output"
	"github.com/c360studio/caseschema/samples"
	"github.com/c360studio/caseschema/schema"
	"github.com/c360studio/caseschema/validation"
)

// ErrInvalidExamples is returned when generated examples fail validation
// against their own schema.
var ErrInvalidExamples = errors.New("generated examples failed validation")

// Report summarizes a run.
type Report struct {
	Base      string
	Schemas   map[investigation.Type]string
	Combined  []string
	Examples  map[investigation.Type]string
	Validated int
	Invalid   int
	Published int
	Duration  time.Duration
}

// Generator runs generation passes for one configuration.
type Generator struct {
	cfg       *config.Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	compiler  *schema.Compiler
	samples   *samples.Generator
	validator *validation.Validator
	converter *graph.Converter
	publisher graph.Publisher
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// WithSamples replaces the example record generator.
func WithSamples(s *samples.Generator) Option {
	return func(g *Generator) { g.samples = s }
}

// WithPublisher publishes generated examples to the graph.
func WithPublisher(p graph.Publisher) Option {
	return func(g *Generator) { g.publisher = p }
}

// New returns a generator for cfg.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:       cfg,
		logger:    slog.Default(),
		metrics:   metrics.Nop(),
		compiler:  schema.NewCompiler(),
		samples:   samples.NewGenerator(),
		converter: graph.NewConverter(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.validator = validation.New(
		validation.WithFormatAssertion(cfg.AssertFormat()),
		validation.WithLogger(g.logger),
		validation.WithMetrics(g.metrics),
	)
	return g
}

// Compile compiles t and, when configured, adds the basic definitions.
func (g *Generator) Compile(t investigation.Type) (*schema.Document, error) {
	doc, err := g.compiler.Compile(t)
	g.metrics.ObserveCompilation(string(t), err)
	if err != nil {
		return nil, err
	}
	if g.cfg.BasicDefinitions() {
		doc = schema.WithBasicDefinitions(doc)
	}
	return doc, nil
}

// Combine compiles the types of a combine entry and merges them.
func (g *Generator) Combine(cc config.CombineConfig) (*schema.Document, error) {
	types, err := cc.CombineTypes()
	if err != nil {
		return nil, err
	}
	docs := make([]*schema.Document, 0, len(types))
	for _, t := range types {
		doc, err := g.Compile(t)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	var opts []schema.CombineOption
	if cc.UnionProperties {
		opts = append(opts, schema.WithPropertyUnion())
	}
	return schema.Combine(docs, opts...)
}

func (g *Generator) writer() (*output.Writer, error) {
	f, err := output.ParseFormat(g.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return output.NewWriter(g.cfg.Output.Dir, output.WithFormat(f), output.WithIndent(g.cfg.Indent())), nil
}

// Run performs a full pass. Files are written even when examples fail
// validation; those failures are returned together, wrapping
// ErrInvalidExamples.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	defer func() { g.metrics.GenerationDuration.Observe(time.Since(start).Seconds()) }()

	report := &Report{
		Schemas:  make(map[investigation.Type]string),
		Examples: make(map[investigation.Type]string),
	}

	types, err := g.cfg.Types()
	if err != nil {
		return nil, err
	}
	baseType, err := g.cfg.BaseType()
	if err != nil {
		return nil, err
	}
	w, err := g.writer()
	if err != nil {
		return nil, err
	}

	base, err := g.Compile(baseType)
	if err != nil {
		return nil, fmt.Errorf("compile base schema: %w", err)
	}
	if report.Base, err = w.WriteBase(base); err != nil {
		return nil, err
	}
	g.metrics.DocumentsWritten.WithLabelValues("schema").Inc()
	g.logger.Info("Generated base schema", "type", baseType, "path", report.Base)

	docs := make(map[investigation.Type]*schema.Document, len(types))
	for _, t := range types {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		doc, err := g.Compile(t)
		if err != nil {
			return report, fmt.Errorf("compile %s: %w", t, err)
		}
		path, err := w.WriteType(t, doc)
		if err != nil {
			return report, err
		}
		docs[t] = doc
		report.Schemas[t] = path
		g.metrics.DocumentsWritten.WithLabelValues("schema").Inc()
		g.logger.Info("Generated schema", "type", t, "path", path,
			"properties", len(doc.Properties), "definitions", len(doc.Definitions))
	}

	for _, cc := range g.cfg.Generate.Combine {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		doc, err := g.Combine(cc)
		if err != nil {
			return report, fmt.Errorf("combine %s: %w", cc.Name, err)
		}
		path, err := w.WriteNamed(cc.Name, doc)
		if err != nil {
			return report, err
		}
		report.Combined = append(report.Combined, path)
		g.metrics.DocumentsWritten.WithLabelValues("combined").Inc()
		g.logger.Info("Generated combined schema", "name", cc.Name, "types", cc.Types, "path", path)
	}

	if !g.cfg.ExamplesEnabled() {
		report.Duration = time.Since(start)
		return report, nil
	}

	var invalid *multierror.Error
	for _, t := range types {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		recs, err := g.Examples(t, docs[t], report)
		if err != nil {
			if !errors.Is(err, ErrInvalidExamples) {
				return report, err
			}
			invalid = multierror.Append(invalid, err)
		}
		path, err := output.WriteExamples(g.cfg.Examples.Dir, t, recs)
		if err != nil {
			return report, err
		}
		report.Examples[t] = path
		g.metrics.DocumentsWritten.WithLabelValues("examples").Inc()
		g.logger.Info("Generated examples", "type", t, "count", len(recs), "path", path)

		n, err := g.Publish(ctx, recs)
		report.Published += n
		if err != nil {
			return report, err
		}
	}

	report.Duration = time.Since(start)
	return report, invalid.ErrorOrNil()
}

// Examples generates the configured number of records for t and, when
// configured, validates them against doc. Validation failures wrap
// ErrInvalidExamples; the records are still returned.
func (g *Generator) Examples(t investigation.Type, doc *schema.Document, report *Report) ([]samples.Record, error) {
	recs, err := g.samples.Generate(t, g.cfg.Examples.Count)
	if err != nil {
		return nil, err
	}
	if !g.cfg.ValidateExamples() || doc == nil {
		return recs, nil
	}

	compiled, err := g.validator.Compile(doc)
	if err != nil {
		return recs, fmt.Errorf("prepare %s schema: %w", t, err)
	}
	var result *multierror.Error
	for i, rec := range recs {
		err := compiled.Validate(rec)
		if report != nil {
			report.Validated++
		}
		if err == nil {
			continue
		}
		if report != nil && validation.IsInvalid(err) {
			report.Invalid++
		}
		result = multierror.Append(result, fmt.Errorf("%s example %d: %w", t, i+1, err))
	}
	if err := result.ErrorOrNil(); err != nil {
		g.logger.Warn("Generated examples failed validation", "type", t, "error", err)
		return recs, fmt.Errorf("%w: %w", ErrInvalidExamples, err)
	}
	return recs, nil
}

// Publish sends the records' triples to the configured publisher and returns
// the number of entity messages sent. Without a publisher it does nothing.
func (g *Generator) Publish(ctx context.Context, recs []samples.Record) (int, error) {
	if g.publisher == nil {
		return 0, nil
	}
	sent := 0
	for _, rec := range recs {
		triples, err := g.converter.FromRecord(rec)
		if err != nil {
			return sent, fmt.Errorf("convert %s: %w", rec.ID(), err)
		}
		n, err := graph.PublishTriples(ctx, g.publisher, g.cfg.NATS.Subject, rec.ID(), triples)
		sent += n
		if err != nil {
			return sent, err
		}
		g.metrics.TriplesPublished.Add(float64(len(triples)))
	}
	g.logger.Debug("Published examples", "records", len(recs), "messages", sent)
	return sent, nil
}
