package driver

import (
	"context"
	"fmt"
	"strconv"

	"doccomment/internal/ast"
	"doccomment/internal/diag"
	"doccomment/internal/extract"
	"doccomment/internal/parser"
	"doccomment/internal/source"
	"doccomment/internal/trace"
)

// Comment is one parsed comment group.
type Comment struct {
	Group extract.Group
	Root  ast.NodeID
}

// FileResult holds the comments of one file. Builder is nil when the file
// could not be loaded; the reason is then in Bag.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Builder  *ast.Builder
	Comments []Comment
	Bag      *diag.Bag
	// Cached is set when the result came from the disk cache.
	Cached bool
}

// Parse loads path and parses every comment group found in it.
func Parse(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fs, ParseFile(ctx, fs.Get(fileID), opts), nil
}

// ParseFile parses the comment groups of a loaded file. It consults and fills
// opts.Cache; cache failures become IO4002 warnings, never errors.
func ParseFile(ctx context.Context, file *source.File, opts Options) *FileResult {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "parse:"+file.Path, trace.CurrentSpan(ctx))

	res := &FileResult{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
	}
	reg := opts.registry()
	key := cacheKey(file.Hash, reg.Fingerprint(), opts.Mode)

	if opts.Cache != nil && opts.Cache.Enabled() {
		emit(ctx, opts.Events, Event{File: file.Path, Stage: StageCache, Status: StatusWorking})
		var payload CachedFile
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			cacheWarning(res.Bag, file, fmt.Errorf("read: %w", err))
		case hit:
			b, comments, diags, restoreErr := payload.restore(file)
			if restoreErr != nil {
				cacheWarning(res.Bag, file, restoreErr)
				break
			}
			res.Builder, res.Comments, res.Cached = b, comments, true
			for _, d := range diags {
				res.Bag.Add(d)
			}
			span.WithExtra("cache", "hit").End(strconv.Itoa(len(res.Comments)))
			return res
		}
	}

	emit(ctx, opts.Events, Event{File: file.Path, Stage: StageExtract, Status: StatusWorking})
	groups := extract.Comments(file, opts.Mode)

	emit(ctx, opts.Events, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	b := ast.NewBuilder(ast.Hints{}, nil)
	reporter := diag.BagReporter{Bag: res.Bag}
	popts := parser.Options{Reporter: reporter, Commands: reg}
	res.Builder = b
	res.Comments = make([]Comment, 0, len(groups))
	for _, g := range groups {
		root := parser.Parse(file, g.Span, b, popts)
		res.Comments = append(res.Comments, Comment{Group: g, Root: root})
		if tr.Level() >= trace.LevelDebug {
			trace.Point(tr, trace.ScopeComment, "comment", g.Span.String(), span.ID())
		}
	}

	if opts.Cache != nil && opts.Cache.Enabled() && res.Bag.Dropped() == 0 {
		if err := opts.Cache.Put(key, snapshot(file, res)); err != nil {
			cacheWarning(res.Bag, file, fmt.Errorf("write: %w", err))
		}
	}

	span.WithExtra("cache", "miss").End(strconv.Itoa(len(res.Comments)))
	return res
}

func cacheWarning(bag *diag.Bag, file *source.File, err error) {
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, "parse cache: "+err.Error()))
}
