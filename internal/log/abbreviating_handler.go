package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// DefaultMaxRunes is the longest string value logged without abbreviation.
const DefaultMaxRunes = 64

// AbbreviatingHandler wraps an slog.Handler and shortens string attribute
// values longer than a rune limit to "prefix…(+N runes)", where N is the
// number of runes dropped. Groups are handled recursively.
type AbbreviatingHandler struct {
	// handler is the underlying slog handler that receives shortened records.
	handler  slog.Handler
	maxRunes int
}

// NewAbbreviatingHandler creates a new AbbreviatingHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used. A non-positive
// maxRunes selects DefaultMaxRunes.
func NewAbbreviatingHandler(handler slog.Handler, maxRunes int) *AbbreviatingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	return &AbbreviatingHandler{handler: handler, maxRunes: maxRunes}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *AbbreviatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle shortens the record's attributes and passes it to the underlying handler.
func (h *AbbreviatingHandler) Handle(ctx context.Context, r slog.Record) error {
	shortened := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		shortened.AddAttrs(h.abbreviateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, shortened)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are shortened before being added.
func (h *AbbreviatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	shortened := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		shortened[i] = h.abbreviateAttr(a)
	}
	return &AbbreviatingHandler{handler: h.handler.WithAttrs(shortened), maxRunes: h.maxRunes}
}

// WithGroup returns a new handler with the given group name.
func (h *AbbreviatingHandler) WithGroup(name string) slog.Handler {
	return &AbbreviatingHandler{handler: h.handler.WithGroup(name), maxRunes: h.maxRunes}
}

// abbreviateAttr shortens a single attribute, recursively handling groups.
func (h *AbbreviatingHandler) abbreviateAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		shortened := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			shortened[i] = h.abbreviateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(shortened...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, Abbreviate(a.Value.String(), h.maxRunes))
	}

	return a
}

// Abbreviate returns s unchanged when it has at most maxRunes runes, and
// otherwise its first maxRunes runes followed by "…(+N runes)".
func Abbreviate(s string, maxRunes int) string {
	runes := []rune(s)
	if maxRunes < 0 || len(runes) <= maxRunes {
		return s
	}
	return fmt.Sprintf("%s…(+%d runes)", string(runes[:maxRunes]), len(runes)-maxRunes)
}

// NewLogger creates a new text slog.Logger that abbreviates long values.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewAbbreviatingHandler(slog.NewTextHandler(w, handlerOptions(verbose)), DefaultMaxRunes))
}

// NewJSONLogger creates a new slog.Logger that abbreviates long values
// and outputs JSON. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewAbbreviatingHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), DefaultMaxRunes))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
