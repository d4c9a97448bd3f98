package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"crypt/internal/diag"
	"crypt/internal/source"
	"crypt/internal/trace"
	"crypt/internal/variant"
)

// FileExt is the extension of documents picked up from directories.
const FileExt = ".crypt"

// FileResult содержит результат разбора одного файла пакета.
type FileResult struct {
	Path   string
	Result *ParseResult // nil, если файл не загрузился
	Bag    *diag.Bag    // не nil, в том числе после отмены
	Err    error
}

// FileSet returns the file set of a loaded file, nil otherwise.
func (r FileResult) FileSet() *source.FileSet {
	if r.Result == nil {
		return nil
	}
	return r.Result.FileSet
}

// Value returns the parsed document, or Null when the file failed.
func (r FileResult) Value() variant.Value {
	if r.Result == nil {
		return variant.Null()
	}
	return r.Result.Value
}

// ListFiles возвращает отсортированный список всех *.crypt файлов в директории
func ListFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, FileExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandPaths replaces every directory in paths with its *.crypt files.
// Plain files are kept whatever their extension; order is preserved.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, loadError(p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		files, err := ListFiles(p)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", p, err)
		}
		out = append(out, files...)
	}
	return out, nil
}

// ParseFiles parses independent files concurrently, at most jobs at a time
// (jobs <= 0 means GOMAXPROCS). Results keep the order of paths. A file
// that fails does not stop the others: its error is in FileResult.Err.
// The returned error is only set when ctx is cancelled.
func ParseFiles(ctx context.Context, paths []string, opts ParseOptions, jobs int) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	if opts.Tracer == nil {
		opts.Tracer = trace.FromContext(ctx)
	}
	if opts.TraceParent == 0 {
		opts.TraceParent = trace.SpanFromContext(ctx).ID()
	}
	batch := trace.Begin(opts.Tracer, trace.ScopeDriver, "parse-files", opts.TraceParent).
		WithExtra("files", fmt.Sprint(len(paths)))
	defer batch.End("")

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			span := batch.Child(trace.ScopeFile, "file").WithExtra("path", path)
			started := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})

			fileOpts := opts
			fileOpts.TraceParent = span.ID()
			// результат пишется по уникальному индексу i, мьютекс не нужен
			results[i] = parseOne(path, fileOpts)

			status := StatusDone
			switch {
			case results[i].Err != nil:
				status = StatusError
			case results[i].Result.Cached:
				status = StatusCached
			}
			span.End(string(status))
			emit(opts.Progress, Event{
				File:    path,
				Stage:   StageParse,
				Status:  status,
				Err:     results[i].Err,
				Elapsed: time.Since(started),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for i := range results {
			if results[i].Bag == nil {
				// до файла не дошли из-за отмены
				results[i] = FileResult{Path: paths[i], Bag: diag.NewBag(0), Err: err}
			}
		}
		return results, err
	}
	return results, nil
}

func parseOne(path string, opts ParseOptions) FileResult {
	res, err := Parse(path, opts)
	if res == nil {
		// Файл не загрузился: диагностика I/O без позиции
		bag := diag.NewBag(opts.MaxDiagnostics)
		bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, err.Error()))
		return FileResult{Path: path, Bag: bag, Err: err}
	}
	return FileResult{Path: path, Result: res, Bag: res.Bag, Err: err}
}

// Summary aggregates a batch.
type Summary struct {
	Files    int
	Failed   int
	Cached   int
	Warnings int
}

// Summarize counts failures, cache hits and warnings over results.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		}
		if r.Result != nil && r.Result.Cached {
			s.Cached++
		}
		if r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			if d.Severity == diag.SevWarning {
				s.Warnings++
			}
		}
	}
	return s
}
