package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// PathHandler wraps an slog.Handler and replaces the home directory prefix
// of string attribute values with "~".
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the directory to shorten. Empty disables rewriting.
	home string
}

// NewPathHandler creates a PathHandler wrapping handler that shortens home.
// If handler is nil, slog.Default().Handler() is used.
func NewPathHandler(handler slog.Handler, home string) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &PathHandler{handler: handler, home: filepath.Clean(home)}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewritten), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	case slog.KindString:
		return slog.String(a.Key, h.shorten(a.Value.String()))
	default:
		return a
	}
}

// shorten replaces a leading home directory with "~".
// Only whole path components match, so /home/al is not shortened inside /home/alice.
func (h *PathHandler) shorten(s string) string {
	if h.home == "" || h.home == "." || h.home == string(filepath.Separator) {
		return s
	}
	if s == h.home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(s, h.home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return s
}

// level returns Debug in verbose mode and Warn otherwise.
func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// userHome returns the home directory, or empty when it is unknown.
func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// NewLogger creates a text logger writing to w.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level(verbose),
	}
	return slog.New(NewPathHandler(slog.NewTextHandler(w, opts), userHome()))
}

// NewJSONLogger creates a logger that outputs JSON, for log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level(verbose),
	}
	return slog.New(NewPathHandler(slog.NewJSONHandler(w, opts), userHome()))
}
