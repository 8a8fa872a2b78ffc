package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"doccomment/internal/ast"
	"doccomment/internal/diag"
	"doccomment/internal/parser"
	"doccomment/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("/// <a href=\"unterminated\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.c", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevWarning,
		diag.LexUnterminatedQuotedString,
		source.Span{File: fileID, Start: 12, End: 25},
		"unterminated quoted string",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.c:1:13"},
		{"relative", PathModeRelative, "src/test.c:1:13"},
		{"basename", PathModeBasename, "test.c:1:13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"})
			output := buf.String()

			for _, want := range []string{tt.contains, "WARNING", "LEX1002", "unterminated quoted string"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()
	short := fs.Get(fs.AddVirtual("test.c", nil))
	long := fs.Get(fs.AddVirtual("/very/long/absolute/path/to/some/nested/directory/file.c", nil))

	if got := formatPath(short, PathModeAuto, ""); got != "test.c" {
		t.Fatalf("short path = %q", got)
	}
	if got := formatPath(long, PathModeAuto, ""); got != "file.c" {
		t.Fatalf("long path = %q", got)
	}
}

func TestPrettySnippetCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.c", []byte("int x;\n/// \\param [ in ] x\nint f(int x);\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.DocDirectionSpelling,
		source.Span{File: fileID, Start: 18, End: 24}, "direction written as '[ in ]'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	want := strings.Join([]string{
		"a.c:2:12: WARNING DOC2004: direction written as '[ in ]'",
		"1 | int x;",
		"2 | /// \\param [ in ] x",
		"  |            ^~~~~~",
		"3 | int f(int x);",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("/// \\brief A\n/// \\short B\n")
	fileID := fs.AddVirtual("test.c", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 17, End: 23}
	d := diag.New(diag.SevWarning, diag.DocDuplicateBrief, primary, "duplicated command '\\short'")
	d = d.WithNote(source.Span{File: fileID, Start: 4, End: 10}, "previous command '\\brief' here")
	d = d.WithFix(diag.Fix{
		ID:    "drop-short",
		Title: "remove duplicate",
		Edits: []diag.TextEdit{{Span: primary, NewText: "", OldText: "\\short"}},
	})
	d = d.WithFix(diag.Fix{
		Title:       "rename to details",
		IsPreferred: true,
		Edits:       []diag.TextEdit{{Span: primary, NewText: "\\details"}},
	})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: test.c:1:5: previous command '\\brief' here",
		"fix #1: remove duplicate (id=drop-short, always-safe)",
		"fix #2: rename to details (always-safe, preferred)",
		"apply=\"\\\\details\"",
		"preview:",
		"- /// \\short B",
		"+ /// \\details B",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyFromParser(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("p.c", []byte("/// \\param[In] x the x\n")))
	bag := diag.NewBag(10)
	parser.Parse(f, f.FullSpan(), ast.NewBuilder(ast.Hints{}, nil), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true, ShowPreview: true})
	output := buf.String()
	for _, want := range []string{"DOC2004", "fix #1: use canonical direction", "+ /// \\param[in] x the x"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.c", []byte("/// x\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.DocEmptyParagraph, source.Span{File: fileID, Start: 4, End: 5}, "m"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}
