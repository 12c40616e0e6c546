package logging

import (
	"context"
	"log/slog"

	"github.com/SAHU-01/VisaVerse/internal/errors"
)

type contextKey string

const slogAttrs contextKey = "slogAttrs"

// ContextHandler enriches log records with [slog.Attr] carried in [context.Context].
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler wraps the underlying [slog.Handler] with context-attribute support.
func NewContextHandler(h slog.Handler) ContextHandler {
	return ContextHandler{Handler: h}
}

// Handle adds the [slog.Attr] stored in context with [WithAttrs] to the record.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	if err := h.Handler.Handle(ctx, r); err != nil {
		return errors.Wrap(err, "handle log record")
	}
	return nil
}

// WithAttrs stores [slog.Attr] in the context so that [ContextHandler] picks them up.
func WithAttrs(ctx context.Context, attr ...slog.Attr) context.Context {
	if v, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		v = append(v, attr...)
		return context.WithValue(ctx, slogAttrs, v)
	}
	return context.WithValue(ctx, slogAttrs, attr)
}
