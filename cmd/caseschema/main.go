// Package main provides the caseschema binary entry point.
// Caseschema generates JSON Schema Draft-07 documents for CASE/UCO
// investigation records, along with example records that validate against
// them.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/c360studio/caseschema/config"
	"github.com/c360studio/caseschema/generator"
	"github.com/c360studio/caseschema/metrics"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "caseschema"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string

	stdout   io.Writer
	logger   *slog.Logger
	loader   *config.Loader
	cfg      *config.Config
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func rootCmd() *cobra.Command {
	a := &app{stdout: os.Stdout}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "CASE/UCO investigation schema generator",
		Long: `Caseschema compiles CASE/UCO ontology profiles for investigation types
into JSON Schema Draft-07 documents.

It provides:
- Per-type and combined schemas (JSON or YAML)
- Example records validated against their own schema
- RDF export of the ontology catalog and records
- Publishing of example records to a NATS graph ingest subject`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		generateCmd(a),
		combineCmd(a),
		validateCmd(a),
		examplesCmd(a),
		exportCmd(a),
		publishCmd(a),
		inspectCmd(a),
		watchCmd(a),
		initCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// setup configures logging and loads configuration. It is called by every
// subcommand that needs a config.
func (a *app) setup(cmd *cobra.Command) error {
	a.stdout = cmd.OutOrStdout()
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: parseLevel(a.logLevel)}))
	slog.SetDefault(a.logger)

	a.loader = config.NewLoader(a.logger)
	cfg, err := a.loader.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)
	return nil
}

func (a *app) generator(opts ...generator.Option) *generator.Generator {
	opts = append([]generator.Option{
		generator.WithLogger(a.logger),
		generator.WithMetrics(a.metrics),
	}, opts...)
	return generator.New(a.cfg, opts...)
}

// logMetrics writes the collected counters at debug level.
func (a *app) logMetrics() {
	samples, err := metrics.Summarize(a.registry)
	if err != nil {
		a.logger.Warn("Failed to gather metrics", "error", err)
		return
	}
	for _, s := range samples {
		a.logger.Debug("Metric", "name", s.Name, "labels", s.Labels, "value", s.Value)
	}
}
