package driver

import (
	"fmt"

	"crypt/internal/diag"
	"crypt/internal/lexer"
	"crypt/internal/observ"
	"crypt/internal/parser"
	"crypt/internal/source"
	"crypt/internal/token"
	"crypt/internal/trace"
	"crypt/internal/variant"
)

// ParseOptions configures Parse, ParseSource and ParseFiles.
type ParseOptions struct {
	MaxDiagnostics int  // 0 = unlimited
	Lenient        bool // tolerate missing separators
	MaxDepth       int  // 0 = parser.DefaultMaxDepth
	MaxTokens      int  // 0 = unlimited
	Tracer         trace.Tracer
	TraceParent    uint64       // span the per-file spans nest under
	Cache          *ParseCache  // nil disables caching
	Progress       ProgressSink // nil disables progress events
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // nil when Value came from the cache
	Value   variant.Value
	Bag     *diag.Bag
	Timing  observ.Report
	Cached  bool
}

// Parse loads path, tokenizes and parses it. A scan or parse failure is
// returned together with the result so its Bag can be printed.
func Parse(path string, opts ParseOptions) (*ParseResult, error) {
	timer := observ.NewTimer()
	fs := source.NewFileSet()

	idx := timer.Begin(string(StageLoad))
	fileID, err := fs.Load(path)
	timer.End(idx, "")
	if err != nil {
		return nil, loadError(path, err)
	}
	return parseFile(fs, fs.Get(fileID), timer, opts)
}

// ParseSource parses an in-memory document registered under name.
func ParseSource(name string, src []byte, opts ParseOptions) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return parseFile(fs, fs.Get(fileID), observ.NewTimer(), opts)
}

func parseFile(fs *source.FileSet, file *source.File, timer *observ.Timer, opts ParseOptions) (*ParseResult, error) {
	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	defer func() { res.Timing = timer.Report() }()

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	span := trace.Begin(opts.Tracer, trace.ScopePass, "parse-file", opts.TraceParent).WithExtra("path", file.Path)

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(file.Hash, opts)
		entry, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: file.ID},
				fmt.Sprintf("parse cache unreadable, parsing again: %v", err)).Emit()
		case ok:
			entry.replay(reporter, file.ID)
			res.Value = entry.Value
			res.Cached = true
			span.End("cached")
			return res, nil
		}
	}

	idx := timer.Begin(string(StageLex))
	lexSpan := span.Child(trace.ScopePass, "lex")
	tokens, err := lexer.Tokenize(file, lexer.Options{Reporter: reporter, MaxTokens: opts.MaxTokens})
	lexSpan.WithExtra("tokens", fmt.Sprint(len(tokens))).EndErr(err)
	timer.End(idx, fmt.Sprintf("%d tokens", len(tokens)))
	if err != nil {
		span.End("scan error")
		return res, fmt.Errorf("%s: %w", file.Path, err)
	}
	res.Tokens = tokens

	idx = timer.Begin(string(StageParse))
	parseSpan := span.Child(trace.ScopePass, "parse")
	value, err := parser.ParseDocument(tokens, parser.Options{
		Reporter:                  reporter,
		TolerateMissingSeparators: opts.Lenient,
		MaxDepth:                  opts.MaxDepth,
		Tracer:                    opts.Tracer,
		TraceParent:               parseSpan.ID(),
	})
	if err == nil {
		parseSpan.WithExtra("kind", value.Kind().String())
	}
	parseSpan.EndErr(err)
	timer.End(idx, "")
	if err != nil {
		span.End("parse error")
		return res, fmt.Errorf("%s: %w", file.Path, err)
	}
	res.Value = value

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newCacheEntry(value, res.Bag)); err != nil {
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: file.ID},
				fmt.Sprintf("parse cache not updated: %v", err)).Emit()
		}
	}
	span.End("ok")
	return res, nil
}
