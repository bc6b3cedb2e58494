package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"calc/internal/diag"
	"calc/internal/observ"
	"calc/internal/source"
	"calc/internal/trace"
)

// SourceExt is the file extension DiagnoseDir looks for.
const SourceExt = ".calc"

// DirOptions tunes DiagnoseDir.
type DirOptions struct {
	MaxDiagnostics int // per file; <=0 means unbounded
	Jobs           int // <=0 means GOMAXPROCS
	Progress       ProgressSink
}

// FileResult holds the outcome for one file of a directory check.
type FileResult struct {
	Path   string
	File   *source.File // nil when the file could not be read
	Bag    *diag.Bag
	Err    error // read error, if any
	Timing observ.Report
}

// ListSourceFiles returns every *.calc file under dir, sorted by path.
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
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// DiagnoseDir checks every *.calc file under dir in parallel. Each file gets
// its own database. Results are ordered by path.
func DiagnoseDir(ctx context.Context, dir string, opts DirOptions) ([]FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = diagnoseFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	trace.Point(tracer, trace.ScopeDriver, "diagnose_dir", fmt.Sprintf("%d files", len(files)))
	return results, nil
}

func diagnoseFile(ctx context.Context, path string, opts DirOptions) FileResult {
	started := time.Now()
	bag := diag.NewBag(opts.MaxDiagnostics)

	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	file, err := source.LoadFile(path)
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return FileResult{Path: path, Bag: bag, Err: err}
	}

	emit(opts.Progress, Event{File: path, Stage: StageCompile, Status: StatusWorking})
	sess := NewSession(path, file.Text())
	res := sess.Run(ctx)
	bag.AddAll(res.Diagnostics)

	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: path, Stage: StageCompile, Status: status, Elapsed: time.Since(started), Diagnostics: len(res.Diagnostics)})
	return FileResult{Path: path, File: sess.File(), Bag: bag, Timing: res.Timing}
}
