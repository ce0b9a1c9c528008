package driver

import (
	"context"
	"errors"
	"fmt"

	"ro/internal/diag"
	"ro/internal/hir"
	"ro/internal/lexer"
	"ro/internal/observ"
	"ro/internal/parser"
	"ro/internal/pipeline"
	"ro/internal/source"
	"ro/internal/trace"
)

// ParseOptions configures Parse and ParseDir.
type ParseOptions struct {
	MaxDiagnostics int
	// Cache is consulted before parsing and filled afterwards. nil disables it.
	Cache *DiskCache
	// Progress receives per-file stage events. May be nil.
	Progress pipeline.ProgressSink
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Program is nil when an error diagnostic was reported.
	Program *hir.Program
	Bag     *diag.Bag
	Cached  bool
	Timing  observ.Report
}

// Parse loads and parses one source file.
func Parse(ctx context.Context, path string, opts ParseOptions) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	out, err := parseFile(ctx, path, file, bag, opts)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Program: out.program,
		Bag:     bag,
		Cached:  out.cached,
		Timing:  out.timing,
	}, nil
}

type fileOutcome struct {
	program *hir.Program
	cached  bool
	timing  observ.Report
}

// parseFile runs the whole pipeline for one loaded file; label names the file in
// progress events. Parse failures become diagnostics in bag; only
// infrastructure failures are returned as errors.
func parseFile(ctx context.Context, label string, file *source.File, bag *diag.Bag, opts ParseOptions) (fileOutcome, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeModule, "file:"+file.Path, trace.CurrentSpan(ctx))
	defer span.End("")

	timer := observ.NewTimer()
	progress := func(stage pipeline.Stage, status pipeline.Status, err error) {
		pipeline.Emit(opts.Progress, pipeline.Event{File: label, Stage: stage, Status: status, Err: err})
	}

	if opts.Cache != nil {
		idx := timer.Begin("cache")
		prog, cached, err := opts.Cache.LoadProgram(file, bag)
		timer.End(idx, "")
		switch {
		case err != nil:
			bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID},
				"ignoring unreadable cache entry: "+err.Error()))
		case cached:
			span.WithExtra("cache", "hit")
			progress(pipeline.StageCache, pipeline.StatusDone, nil)
			return fileOutcome{program: prog, cached: true, timing: timer.Report()}, nil
		}
	}

	// предупреждения парсера идут в отдельный bag, чтобы положить их в кэш
	warnings := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: warnings}
	popts := parser.Options{Reporter: reporter, Tracer: tracer, ParentSpan: span.ID()}

	progress(pipeline.StageTokenize, pipeline.StatusWorking, nil)
	idx := timer.Begin("tokenize")
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	timer.End(idx, fmt.Sprintf("%d tokens", len(tokens)))

	progress(pipeline.StageExtract, pipeline.StatusWorking, nil)
	idx = timer.Begin("extract")
	raw, err := parser.Extract(tokens, popts)
	timer.End(idx, "")
	if err != nil {
		bag.Merge(warnings)
		return failed(err, bag, timer, func(err error) { progress(pipeline.StageExtract, pipeline.StatusError, err) })
	}

	progress(pipeline.StageAssemble, pipeline.StatusWorking, nil)
	idx = timer.Begin("assemble")
	prog, err := parser.Assemble(raw, popts)
	timer.End(idx, "")
	bag.Merge(warnings)
	if err != nil {
		return failed(err, bag, timer, func(err error) { progress(pipeline.StageAssemble, pipeline.StatusError, err) })
	}

	if opts.Cache != nil {
		if err := opts.Cache.StoreProgram(file, prog, warnings.Items()); err != nil {
			bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID},
				"failed to write cache entry: "+err.Error()))
		}
	}

	span.WithExtra("funcs", fmt.Sprint(prog.FuncCount()))
	progress(pipeline.StageAssemble, pipeline.StatusDone, nil)
	return fileOutcome{program: prog, timing: timer.Report()}, nil
}

func failed(err error, bag *diag.Bag, timer *observ.Timer, report func(error)) (fileOutcome, error) {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return fileOutcome{}, err
	}
	report(err)
	bag.Add(perr.Diagnostic())
	return fileOutcome{timing: timer.Report()}, nil
}
