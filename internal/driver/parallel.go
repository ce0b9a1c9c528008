package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ro/internal/diag"
	"ro/internal/hir"
	"ro/internal/observ"
	"ro/internal/pipeline"
	"ro/internal/source"
	"ro/internal/trace"
)

// SourceExt is the extension of ro source files.
const SourceExt = ".ro"

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path    string        // путь к файлу
	FileID  source.FileID // ID файла в FileSet
	Program *hir.Program  // nil, если были ошибки
	Bag     *diag.Bag     // диагностики
	Cached  bool
	Timing  observ.Report
}

// ListSourceFiles возвращает отсортированный список всех *.ro файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir парсит все *.ro файлы в директории параллельно. Results are in
// ListSourceFiles order regardless of scheduling.
func ParseDir(ctx context.Context, dir string, opts ParseOptions, jobs int) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "parse-dir", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	// предзагрузка: FileSet не потокобезопасен, поэтому грузим до запуска горутин
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностика указывала на путь
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[path]}, "failed to load file: "+loadErr.Error()))
				pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: loadErr})
				results[i] = ParseDirResult{Path: path, FileID: fileIDs[path], Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			out, err := parseFile(gctx, path, fileSet.Get(fileID), bag, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = ParseDirResult{
				Path:    path,
				FileID:  fileID,
				Program: out.program,
				Bag:     bag,
				Cached:  out.cached,
				Timing:  out.timing,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	span.WithExtra("files", fmt.Sprint(len(files)))
	return fileSet, results, nil
}
