package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"doccomment/internal/diag"
	"doccomment/internal/source"
	"doccomment/internal/trace"
)

// ParseDir парсит все подходящие файлы под root параллельно. Results follow
// the sorted file order. Files that fail to load get an empty placeholder in
// the FileSet and an IO4001 error in their bag.
func ParseDir(ctx context.Context, root string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(root, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	return ParseFiles(ctx, files, opts)
}

// ParseFiles is ParseDir over an explicit file list.
func ParseFiles(ctx context.Context, files []string, opts Options) (*source.FileSet, []FileResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "parse-files")
	defer span.End("")

	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: загружаем всё заранее
	done := opts.Timer.Track("load")
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		emit(ctx, opts.Events, Event{File: path, Stage: StageQueued, Status: StatusQueued})
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[i] = loadErr
			fileID = fileSet.Add(path, nil, source.FileVirtual)
		}
		fileIDs[i] = fileID
	}
	done(strconv.Itoa(len(files)) + " files")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// один реестр на всех; лимит диагностик применяет Diagnostics
	opts.Commands = opts.registry()
	opts.MaxDiagnostics = 0

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	done = opts.Timer.Track("parse")
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			file := fileSet.Get(fileIDs[i])
			if loadErr, hadError := loadErrors[i]; hadError {
				bag := diag.NewBag(0)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: file.ID}, "failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, FileID: file.ID, Bag: bag}
				emit(gctx, opts.Events, Event{File: path, Stage: StageParse, Status: StatusError})
				return nil
			}

			res := ParseFile(gctx, file, opts)
			res.Path = path
			results[i] = *res
			emit(gctx, opts.Events, Event{File: path, Stage: StageParse, Status: StatusDone, Comments: len(res.Comments)})
			return nil
		})
	}

	// Ждём завершения всех горутин
	err := g.Wait()
	done(fmt.Sprintf("jobs=%d", min(jobs, len(files))))
	span.WithExtra("files", strconv.Itoa(len(files))).WithExtra("elapsed", time.Since(start).String())
	return fileSet, results, err
}

// Diagnostics merges per-file bags into one sorted, deduplicated bag holding
// at most limit items; the rest are counted as dropped.
func Diagnostics(results []FileResult, limit int) *diag.Bag {
	all := diag.NewBag(0)
	for i := range results {
		all.Merge(results[i].Bag)
	}
	all.Sort()
	all.Dedup()
	return Limit(all, limit, nil)
}

// Limit copies the diagnostics accepted by keep (nil keeps all) into a bag of
// at most limit items. Filtering happens first, so rejected items neither use
// the budget nor count as dropped.
func Limit(all *diag.Bag, limit int, keep func(diag.Diagnostic) bool) *diag.Bag {
	if keep == nil && (limit <= 0 || all.Len() <= limit) {
		return all
	}
	out := diag.NewBag(limit)
	for _, d := range all.Items() {
		if keep == nil || keep(d) {
			out.Add(d)
		}
	}
	return out
}

// Comments counts parsed comments across results.
func Comments(results []FileResult) int {
	n := 0
	for i := range results {
		n += len(results[i].Comments)
	}
	return n
}
