package driver

import (
	"context"
	"strconv"

	"doccomment/internal/diag"
	"doccomment/internal/extract"
	"doccomment/internal/lexer"
	"doccomment/internal/source"
	"doccomment/internal/token"
	"doccomment/internal/trace"
)

// CommentTokens is the token stream of one extracted comment, EOF included.
type CommentTokens struct {
	Group  extract.Group
	Tokens []token.Token
}

type TokenizeResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Comments []CommentTokens
	Bag      *diag.Bag
}

// Tokenize loads path and lexes every comment group found in it.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	done := opts.Timer.Track("load")
	fileID, err := fs.Load(path)
	done(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "tokenize:"+file.Path, trace.CurrentSpan(ctx))

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	reg := opts.registry()

	done = opts.Timer.Track("tokenize")
	groups := extract.Comments(file, opts.Mode)
	comments := make([]CommentTokens, 0, len(groups))
	for _, g := range groups {
		lx := lexer.New(file, g.Span, lexer.Options{Reporter: reporter, Commands: reg})
		comments = append(comments, CommentTokens{Group: g, Tokens: lx.All()})
	}
	done("")

	span.WithExtra("comments", strconv.Itoa(len(comments))).End("")
	return &TokenizeResult{
		FileSet:  fs,
		File:     file,
		Comments: comments,
		Bag:      bag,
	}, nil
}
