package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer stores t in ctx; a nil t stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanFromContext returns the span stored by Start, or nil.
func SpanFromContext(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// Start begins a span under the span carried by ctx (a root span on the
// context's tracer when there is none) and returns ctx carrying the new span.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	var s *Span
	if parent := SpanFromContext(ctx); parent != nil {
		s = parent.Child(scope, name)
	} else {
		s = Begin(FromContext(ctx), scope, name, 0)
	}
	return s, context.WithValue(ctx, spanKey{}, s)
}
