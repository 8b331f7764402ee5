package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/caseschema/config"
	"github.com/c360studio/caseschema/generator"
	"github.com/c360studio/caseschema/graph"
	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/output"
	"github.com/c360studio/caseschema/samples"
	"github.com/c360studio/caseschema/schema"
	"github.com/c360studio/caseschema/validation"
	"github.com/c360studio/caseschema/watch"
)

func generateCmd(a *app) *cobra.Command {
	var (
		types      []string
		outDir     string
		format     string
		noExamples bool
		publish    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate base, per-type and combined schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if len(types) > 0 {
				a.cfg.Generate.Types = types
			}
			if outDir != "" {
				a.cfg.Output.Dir = outDir
			}
			if format != "" {
				a.cfg.Output.Format = format
			}
			if noExamples {
				off := false
				a.cfg.Examples.Enabled = &off
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			var opts []generator.Option
			if publish {
				nc, err := graph.Connect(a.cfg.NATS.URL)
				if err != nil {
					return err
				}
				defer nc.Close()
				opts = append(opts, generator.WithPublisher(nc))
			}

			report, err := a.generator(opts...).Run(cmd.Context())
			a.logMetrics()
			if report != nil {
				printReport(a, report)
			}
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "Investigation types to generate (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, yaml)")
	cmd.Flags().BoolVar(&noExamples, "no-examples", false, "Skip example generation")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish generated examples to NATS")
	return cmd
}

func printReport(a *app, r *generator.Report) {
	if r.Base != "" {
		fmt.Fprintf(a.stdout, "base      %s\n", r.Base)
	}
	for _, t := range investigation.AllTypes() {
		if path, ok := r.Schemas[t]; ok {
			fmt.Fprintf(a.stdout, "schema    %s\n", path)
		}
	}
	for _, path := range r.Combined {
		fmt.Fprintf(a.stdout, "combined  %s\n", path)
	}
	for _, t := range investigation.AllTypes() {
		if path, ok := r.Examples[t]; ok {
			fmt.Fprintf(a.stdout, "examples  %s\n", path)
		}
	}
	a.logger.Info("Generation complete",
		"schemas", len(r.Schemas),
		"combined", len(r.Combined),
		"validated", r.Validated,
		"invalid", r.Invalid,
		"published", r.Published,
		"duration", r.Duration)
}

func combineCmd(a *app) *cobra.Command {
	var (
		name   string
		union  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "combine TYPE [TYPE...]",
		Short: "Merge the schemas of several investigation types into one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			cc := config.CombineConfig{Name: name, Types: args, UnionProperties: union}
			if cc.Name == "" {
				cc.Name = strings.ToLower(strings.Join(args, "_"))
			}

			doc, err := a.generator().Combine(cc)
			if err != nil {
				return err
			}

			f, err := output.ParseFormat(a.cfg.Output.Format)
			if err != nil {
				return err
			}
			if stdout {
				data, err := output.Encode(doc, f, a.cfg.Indent())
				if err != nil {
					return err
				}
				_, err = a.stdout.Write(data)
				return err
			}
			w := output.NewWriter(a.cfg.Output.Dir, output.WithFormat(f), output.WithIndent(a.cfg.Indent()))
			path, err := w.WriteNamed(cc.Name, doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "File stem of the combined schema (default: joined type names)")
	cmd.Flags().BoolVar(&union, "union", false, "Keep every property of every type instead of the shared set")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the combined schema instead of writing it")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	var (
		typeName    string
		schemaPath  string
		checkSchema bool
	)

	cmd := &cobra.Command{
		Use:   "validate [FILE|GLOB...]",
		Short: "Validate JSON or JSONL instance files against a schema",
		Long: `Validate instance files against the compiled schema of an investigation
type (--type) or a schema document on disk (--schema). Patterns support **.
Files ending in .jsonl hold one instance per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if len(args) == 0 && !checkSchema {
				return errors.New("nothing to validate: pass instance files or --check-schema")
			}

			v := validation.New(
				validation.WithFormatAssertion(a.cfg.AssertFormat()),
				validation.WithLogger(a.logger),
				validation.WithMetrics(a.metrics),
			)
			defer a.logMetrics()

			raw, err := a.loadSchema(typeName, schemaPath)
			if err != nil {
				return err
			}

			if checkSchema {
				if err := v.CheckRaw(raw); err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, "schema ok")
			}
			if len(args) == 0 {
				return nil
			}

			var compiled *validation.Compiled
			if doc, isDoc := raw.(*schema.Document); isDoc {
				compiled, err = v.Compile(doc)
			} else {
				compiled, err = v.CompileRaw(raw)
			}
			if err != nil {
				return err
			}
			report, err := compiled.ValidateFiles(cmd.Context(), args)
			fmt.Fprintf(a.stdout, "files=%d instances=%d invalid=%d\n", report.Files, report.Instances, report.Invalid)
			return err
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Investigation type whose schema to validate against")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Schema document to validate against (JSON or YAML)")
	cmd.Flags().BoolVar(&checkSchema, "check-schema", false, "Check the schema itself against the Draft-07 meta-schema")
	cmd.MarkFlagsMutuallyExclusive("type", "schema")
	cmd.MarkFlagsOneRequired("type", "schema")
	return cmd
}

// loadSchema returns the compiled *schema.Document of typeName, or the schema
// file at path decoded as-is.
func (a *app) loadSchema(typeName, path string) (any, error) {
	if path != "" {
		return output.ReadRaw(path)
	}
	t, err := investigation.ParseType(typeName)
	if err != nil {
		return nil, err
	}
	return a.generator().Compile(t)
}

func examplesCmd(a *app) *cobra.Command {
	var (
		count  int
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "examples TYPE",
		Short: "Generate example records for an investigation type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			t, err := investigation.ParseType(args[0])
			if err != nil {
				return err
			}
			if count > 0 {
				a.cfg.Examples.Count = count
			}

			g := a.generator()
			doc, err := g.Compile(t)
			if err != nil {
				return err
			}
			recs, err := g.Examples(t, doc, nil)
			if err != nil {
				return err
			}

			if outDir == "" {
				return samples.WriteJSONL(a.stdout, recs)
			}
			path, err := output.WriteExamples(outDir, t, recs)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, path)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of records (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write a JSONL file into this directory instead of stdout")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var (
		format      string
		profile     string
		recordsPath string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "export TYPE",
		Short: "Export an investigation catalog, and optionally records, as RDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			t, err := investigation.ParseType(args[0])
			if err != nil {
				return err
			}
			if format != "" {
				a.cfg.Export.Format = format
			}
			if profile != "" {
				a.cfg.Export.Profile = profile
			}

			var recs []samples.Record
			if recordsPath != "" {
				if recs, err = readRecords(recordsPath); err != nil {
					return err
				}
			}

			out, err := a.generator().Export(t, recs)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = fmt.Fprint(a.stdout, out)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintln(a.stdout, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "RDF format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Export profile (classes, full)")
	cmd.Flags().StringVarP(&recordsPath, "records", "r", "", "JSON or JSONL file of records to include")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func readRecords(path string) ([]samples.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := samples.ReadJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return recs, nil
}

func publishCmd(a *app) *cobra.Command {
	var (
		url         string
		subject     string
		recordsPath string
	)

	cmd := &cobra.Command{
		Use:   "publish TYPE",
		Short: "Publish records of an investigation type to the NATS graph ingest subject",
		Long: `Publish converts records to triples and sends one entity message per
subject. Records come from --records, or are generated and validated like
the examples command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			t, err := investigation.ParseType(args[0])
			if err != nil {
				return err
			}
			if url != "" {
				a.cfg.NATS.URL = url
			}
			if subject != "" {
				a.cfg.NATS.Subject = subject
			}

			nc, err := graph.Connect(a.cfg.NATS.URL)
			if err != nil {
				return err
			}
			defer nc.Close()

			g := a.generator(generator.WithPublisher(nc))
			var recs []samples.Record
			if recordsPath != "" {
				recs, err = readRecords(recordsPath)
			} else {
				var doc *schema.Document
				if doc, err = g.Compile(t); err == nil {
					recs, err = g.Examples(t, doc, nil)
				}
			}
			if err != nil {
				return err
			}

			sent, err := g.Publish(cmd.Context(), recs)
			if err != nil {
				return err
			}
			if err := nc.Flush(); err != nil {
				return fmt.Errorf("flush nats: %w", err)
			}
			a.logger.Info("Published records",
				"type", t, "records", len(recs), "messages", sent, "subject", a.cfg.NATS.Subject)
			a.logMetrics()
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "NATS server URL (default from config)")
	cmd.Flags().StringVar(&subject, "subject", "", "Ingest subject (default from config)")
	cmd.Flags().StringVarP(&recordsPath, "records", "r", "", "JSON or JSONL file of records to publish")
	return cmd
}

func inspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TYPE",
		Short: "Show the ontology profile of an investigation type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			t, err := investigation.ParseType(args[0])
			if err != nil {
				return err
			}
			p, err := investigation.NewProfile(t)
			if err != nil {
				return err
			}

			classes, props := p.Catalog.Len()
			fmt.Fprintf(a.stdout, "%s: %d classes, %d properties, %d collections\n",
				t, classes, props, len(p.Collections))

			fmt.Fprintln(a.stdout, "\nClasses:")
			for _, c := range p.Catalog.Classes() {
				line := "  " + c.Name()
				if sup := c.Superclasses(); len(sup) > 0 {
					line += " < " + strings.Join(sup, ", ")
				}
				fmt.Fprintln(a.stdout, line)
			}

			fmt.Fprintln(a.stdout, "\nProperties:")
			for _, prop := range p.Catalog.Properties() {
				fmt.Fprintf(a.stdout, "  %s (%s) -> %s\n", prop.Name(), prop.Kind(), prop.Range())
			}

			if len(p.Collections) > 0 {
				fmt.Fprintln(a.stdout, "\nCollections:")
				for _, c := range p.Collections {
					item := c.ItemRef
					if item == "" {
						item = c.ItemType
					}
					fmt.Fprintf(a.stdout, "  %s []%s\n", c.Field, item)
				}
			}

			if diags := p.Catalog.Diagnostics(); len(diags) > 0 {
				fmt.Fprintln(a.stdout, "\nDiagnostics:")
				for _, d := range diags {
					fmt.Fprintf(a.stdout, "  %s\n", d)
				}
			}
			return nil
		},
	}
}

func watchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the configuration changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()

			path, err := a.watchedConfig()
			if err != nil {
				return err
			}
			w, err := watch.New([]string{path}, a.cfg.Watch.Debounce, a.logger)
			if err != nil {
				return err
			}

			if _, err := a.generator().Run(ctx); err != nil {
				a.logger.Error("Initial generation failed", "error", err)
			}

			err = watch.Run(ctx, w, func(ctx context.Context, ev watch.Event) error {
				cfg, err := a.loader.Load(a.configPath)
				if err != nil {
					return err
				}
				a.cfg = cfg
				report, err := a.generator().Run(ctx)
				if report != nil {
					printReport(a, report)
				}
				return err
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	return cmd
}

// watchedConfig returns the config file a watch follows: the --config file,
// the discovered project config, or caseschema.yaml in the working directory.
func (a *app) watchedConfig() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	if p := a.loader.FindProjectConfig(); p != "" {
		return p, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, config.ProjectConfigFile), nil
}

func initCmd(a *app) *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if user {
				if err := a.loader.EnsureUserConfig(); err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, a.loader.UserConfigPath())
				return nil
			}
			if _, err := os.Stat(config.ProjectConfigFile); err == nil {
				return fmt.Errorf("%s already exists", config.ProjectConfigFile)
			}
			if err := config.DefaultConfig().SaveToFile(config.ProjectConfigFile); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, config.ProjectConfigFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user config (~/.config/caseschema/config.yaml) instead")
	return cmd
}
