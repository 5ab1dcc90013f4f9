// Package log provides a context-aware logging utility using slog.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type ctxAttrsKey struct{}

var ctxAttrs ctxAttrsKey

// ContextHandler decorates an slog.Handler with attributes carried
// in the context.
type ContextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the record before calling the
// underlying handler.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxAttrs).([]slog.Attr); ok {
		for _, a := range attrs {
			r.AddAttrs(a)
		}
	}
	return h.Handler.Handle(ctx, r)
}

// AppendCtx attaches an slog attribute to the context so that every
// record created with that context includes it.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(ctxAttrs).([]slog.Attr); ok {
		v = append(v, attr)
		return context.WithValue(parent, ctxAttrs, v)
	}

	return context.WithValue(parent, ctxAttrs, []slog.Attr{attr})
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

// New returns a JSON logger writing to stderr. A nil options defaults
// to debug level.
func New(options *slog.HandlerOptions) *slog.Logger {
	if options == nil {
		options = &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}
	}

	return slog.New(&ContextHandler{
		Handler: slog.NewJSONHandler(os.Stderr, options),
	})
}

// NullLogger returns a logger that drops every record. Used in tests.
func NullLogger() *slog.Logger {
	var w io.Writer = discardWriter{}
	return slog.New(&ContextHandler{
		Handler: slog.NewJSONHandler(w, &slog.HandlerOptions{}),
	})
}
