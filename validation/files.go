package validation

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/c360studio/caseschema/schema"
)

// FileReport summarizes a multi-file validation run.
type FileReport struct {
	Files     int
	Instances int
	Invalid   int
}

// ResolveFiles expands glob patterns (with ** support) into a sorted,
// de-duplicated list of regular files. Patterns without glob characters
// must name an existing file.
func ResolveFiles(patterns []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := resolvePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				resolved = append(resolved, m)
			}
		}
	}
	return resolved, nil
}

func resolvePattern(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		info, err := os.Stat(pattern)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory: %s", pattern)
		}
		return []string{filepath.Clean(pattern)}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}
	return matches, nil
}

// ValidateFiles validates every instance in the files matched by patterns.
// ".jsonl" files hold one instance per line; any other file holds a single
// JSON instance. Failures from all files are aggregated; the report counts
// what was checked before ctx was cancelled.
func (v *Validator) ValidateFiles(ctx context.Context, doc *schema.Document, patterns []string) (FileReport, error) {
	compiled, err := v.Compile(doc)
	if err != nil {
		return FileReport{}, err
	}
	return compiled.ValidateFiles(ctx, patterns)
}

// ValidateFiles validates the files matched by patterns against c. See
// Validator.ValidateFiles.
func (c *Compiled) ValidateFiles(ctx context.Context, patterns []string) (FileReport, error) {
	var report FileReport

	files, err := ResolveFiles(patterns)
	if err != nil {
		return report, err
	}

	var result *multierror.Error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Files++
		n, invalid, err := c.v.validateFile(ctx, c, path)
		report.Instances += n
		report.Invalid += invalid
		if err != nil {
			result = multierror.Append(result, err)
		}
	}

	c.v.logger.Debug("Validated instance files",
		"files", report.Files, "instances", report.Instances, "invalid", report.Invalid)
	return report, result.ErrorOrNil()
}

func (v *Validator) validateFile(ctx context.Context, c *Compiled, path string) (instances, invalid int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read %s: %w", path, err)
	}

	if !strings.EqualFold(filepath.Ext(path), ".jsonl") {
		if err := c.ValidateJSON(data); err != nil {
			return 1, countInvalid(err), fmt.Errorf("%s: %w", path, err)
		}
		return 1, 0, nil
	}

	var result *multierror.Error
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if ctx.Err() != nil {
			break
		}
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		instances++
		if err := c.ValidateJSON(raw); err != nil {
			invalid += countInvalid(err)
			result = multierror.Append(result, fmt.Errorf("%s:%d: %w", path, line, err))
		}
	}
	if err := scanner.Err(); err != nil {
		result = multierror.Append(result, fmt.Errorf("scan %s: %w", path, err))
	}
	return instances, invalid, result.ErrorOrNil()
}

func countInvalid(err error) int {
	if IsInvalid(err) {
		return 1
	}
	return 0
}
