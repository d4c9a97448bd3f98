package parser

import (
	"crypt/internal/diag"
	"crypt/internal/trace"
)

// DefaultMaxDepth bounds object nesting when Options.MaxDepth is not set.
const DefaultMaxDepth = 256

type Options struct {
	// Reporter получает предупреждения и фатальную ошибку; может быть nil.
	Reporter diag.Reporter
	// TolerateMissingSeparators turns a missing ',' between elements into a
	// warning, so newline-separated bodies parse.
	TolerateMissingSeparators bool
	// MaxDepth limits object nesting; <= 0 means DefaultMaxDepth.
	MaxDepth int
	// Tracer receives node-scope points for object kind decisions; may be nil.
	Tracer trace.Tracer
	// TraceParent is the span the points are attached to.
	TraceParent uint64
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
