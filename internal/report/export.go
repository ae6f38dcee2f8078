package report

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/problemreg/internal/catalog"
)

// Target is one file to produce.
type Target struct {
	// Format selects the writer.
	Format Format

	// Path is the destination file.
	Path string
}

// Result describes a file written by the Exporter.
type Result struct {
	Format Format `json:"format"`
	Path   string `json:"path"`
	Bytes  int    `json:"bytes"`

	// Digest is the hex-encoded BLAKE2b-256 digest of the file content.
	Digest string `json:"digest"`
}

// Exporter writes a registry to several files. Each file is written
// atomically; files are independent, so they are produced concurrently.
type Exporter struct {
	logger      *slog.Logger
	concurrency int
	perm        os.FileMode
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithExportLogger sets the logger used for export progress.
func WithExportLogger(logger *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithExportConcurrency sets how many files are written at once.
// A value of 1 writes files sequentially in target order.
func WithExportConcurrency(n int) ExporterOption {
	return func(e *Exporter) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewExporter creates an Exporter.
func NewExporter(opts ...ExporterOption) *Exporter {
	e := &Exporter{
		concurrency: 4,
		perm:        DefaultFilePerm,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Targets pairs formats with file names from names, falling back to each
// format's default file name.
func Targets(formats []Format, names map[Format]string) []Target {
	targets := make([]Target, 0, len(formats))
	for _, f := range formats {
		path := names[f]
		if path == "" {
			path = f.DefaultFileName()
		}
		targets = append(targets, Target{Format: f, Path: path})
	}
	return targets
}

// Export writes reg to every target and returns the results in target order.
// The first failure cancels targets that have not started yet; a failed
// target leaves any previous file at its path untouched.
func (e *Exporter) Export(ctx context.Context, reg *catalog.Registry, targets []Target) ([]Result, error) {
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		key := targetKey(t.Path)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTarget, t.Path)
		}
		seen[key] = true
		if _, err := NewWriter(t.Format, io.Discard); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("starting export", "targets", len(targets), "concurrency", e.concurrency)
	startTime := time.Now()

	results := make([]Result, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := e.exportOne(reg, target)
			if err != nil {
				e.logger.Error("export failed", "format", target.Format, "path", target.Path, "error", err)
				return err
			}

			// Each goroutine owns its index.
			results[i] = result
			e.logger.Debug("export written", "format", target.Format, "path", target.Path, "bytes", result.Bytes)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("export complete", "elapsed", time.Since(startTime))
	return results, nil
}

// exportOne writes a single target and computes its digest on the way.
func (e *Exporter) exportOne(reg *catalog.Registry, target Target) (Result, error) {
	h := newHash()
	var n int

	err := WriteFileAtomic(target.Path, e.perm, func(w io.Writer) error {
		writer, err := NewWriter(target.Format, io.MultiWriter(w, h))
		if err != nil {
			return err
		}
		n, err = writer.Write(reg)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", target.Format, err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Format: target.Format,
		Path:   target.Path,
		Bytes:  n,
		Digest: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// targetKey returns the absolute form of path so that different spellings of
// the same file compare equal.
func targetKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
