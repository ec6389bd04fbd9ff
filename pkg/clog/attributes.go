package clog

import (
	"context"
	"log/slog"
	"sync"
)

const ErrorAttributeKey = "error.message"

type ctxAttrs struct {
	mu         sync.RWMutex
	attributes map[string]any
}

type ctxAttrsKey struct{}

// ContextWithAttributes returns a context that can accumulate log
// attributes via AddAttribute. The AttributesHandler folds them into every
// record logged with that context.
func ContextWithAttributes(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxAttrsKey{}, &ctxAttrs{
		attributes: make(map[string]any),
	})
}

// AddAttribute records a key/value pair on the context. It is a no-op when
// the context was not prepared with ContextWithAttributes.
func AddAttribute(ctx context.Context, key string, value any) {
	a, ok := ctx.Value(ctxAttrsKey{}).(*ctxAttrs)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attributes[key] = value
}

// GetAttributes returns a copy of the attributes stored on the context.
func GetAttributes(ctx context.Context) map[string]any {
	a, ok := ctx.Value(ctxAttrsKey{}).(*ctxAttrs)
	if !ok {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	copied := make(map[string]any, len(a.attributes))
	for k, v := range a.attributes {
		copied[k] = v
	}
	return copied
}

// AttributesHandler wraps another handler and appends context attributes to
// each record before delegating.
type AttributesHandler struct {
	handler slog.Handler
}

func NewAttributesHandler(handler slog.Handler) *AttributesHandler {
	return &AttributesHandler{
		handler: handler,
	}
}

func (h *AttributesHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *AttributesHandler) Handle(ctx context.Context, record slog.Record) error {
	attrs := GetAttributes(ctx)
	if len(attrs) > 0 {
		converted := make([]slog.Attr, 0, len(attrs))
		for k, v := range attrs {
			converted = append(converted, slog.Any(k, v))
		}
		record.AddAttrs(converted...)
	}
	return h.handler.Handle(ctx, record)
}

func (h *AttributesHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AttributesHandler{
		handler: h.handler.WithAttrs(attrs),
	}
}

func (h *AttributesHandler) WithGroup(name string) slog.Handler {
	return &AttributesHandler{
		handler: h.handler.WithGroup(name),
	}
}
