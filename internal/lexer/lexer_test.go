package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"doccomment/internal/commands"
	"doccomment/internal/diag"
	"doccomment/internal/lexer"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

// makeTestLexer создаёт лексер для всего содержимого строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.h", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, file.FullSpan(), lexer.Options{Reporter: reporter})
	return lx, reporter
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

type tk struct {
	kind token.Kind
	text string
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens сравнивает вид и текст токенов; Newline сравнивается только по виду
func expectTokens(t *testing.T, input string, expected []tk) []token.Token {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v",
			len(expected), len(tokens), input, tokensToString(tokens))
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i].kind {
			t.Fatalf("Token %d: expected %v, got %v\nTokens: %v", i, expected[i].kind, tok.Kind, tokensToString(tokens))
		}
		if tok.Kind != token.Newline && tok.Kind != token.EOF && tok.Text != expected[i].text {
			t.Fatalf("Token %d: expected text %q, got %q", i, expected[i].text, tok.Text)
		}
	}
	return tokens
}

var (
	nl  = tk{kind: token.Newline}
	eof = tk{kind: token.EOF}
)

func text(s string) tk { return tk{token.Text, s} }

func TestLineComments(t *testing.T) {
	toks := expectTokens(t, "// Aaa\n// Bbb", []tk{
		text(" Aaa"), nl, text(" Bbb"), nl, eof,
	})
	if !toks[0].EndsLine {
		t.Errorf("expected EndsLine on %q", toks[0].Text)
	}
	if toks[0].Span.Start != 2 || toks[0].Span.End != 6 {
		t.Errorf("unexpected span %v", toks[0].Span)
	}
}

func TestLineCommentMarkers(t *testing.T) {
	expectTokens(t, "/// Aaa\n//! Bbb\n///< Ccc", []tk{
		text(" Aaa"), nl, text(" Bbb"), nl, text(" Ccc"), nl, eof,
	})
}

func TestBlankLinesBetweenLineComments(t *testing.T) {
	want := []tk{text(" Aaa"), nl, nl, text(" Bbb"), nl, eof}
	expectTokens(t, "// Aaa\n//\n// Bbb", want)
	// строка из пробелов ведёт себя как пустая
	expectTokens(t, "// Aaa\n//   \n// Bbb", want)
}

func TestBlockCommentDecorations(t *testing.T) {
	expectTokens(t, "/** Aaa\n * Bbb\n */", []tk{
		text(" Aaa"), nl, text(" Bbb"), nl, nl, nl, eof,
	})
	expectTokens(t, "/*! Aaa */", []tk{
		text(" Aaa "), nl, nl, eof,
	})
	expectTokens(t, "/**/", []tk{nl, nl, eof})
}

func TestRawText(t *testing.T) {
	expectTokens(t, " Aaa\n Bbb", []tk{
		text(" Aaa"), nl, text(" Bbb"), nl, eof,
	})
}

func TestEscapes(t *testing.T) {
	expectTokens(t, " \\@ and \\:: and \\< @\\", []tk{
		text(" "), text("@"), text(" and "), text("::"), text(" and "), text("<"), text(" "), text("\\"), nl, eof,
	})
}

func TestStrayMarkers(t *testing.T) {
	expectTokens(t, "\\ x@", []tk{
		text("\\"), text(" x"), text("@"), nl, eof,
	})
	expectTokens(t, "a\\1", []tk{
		text("a"), text("\\"), text("1"), nl, eof,
	})
}

func TestCommands(t *testing.T) {
	toks := expectTokens(t, "\\brief Aaa @foo", []tk{
		{token.Command, "brief"}, text(" Aaa "), {token.Command, "foo"}, nl, eof,
	})
	if toks[0].Marker != token.MarkerBackslash || toks[2].Marker != token.MarkerAt {
		t.Errorf("unexpected markers %q %q", toks[0].Marker, toks[2].Marker)
	}
	if toks[0].Span.Start != 0 || toks[0].Span.End != 6 {
		t.Errorf("command span should include the marker, got %v", toks[0].Span)
	}
	if !toks[2].EndsLine {
		t.Errorf("expected EndsLine on trailing command")
	}
}

func TestFormulaCommands(t *testing.T) {
	expectTokens(t, "\\f$ a \\f$", []tk{
		{token.VerbatimBlockBegin, "f$"},
		{token.VerbatimBlockLine, " a "},
		{token.VerbatimBlockEnd, "f$"},
		nl, eof,
	})
	expectTokens(t, "\\f[x\\f]", []tk{
		{token.VerbatimBlockBegin, "f["},
		{token.VerbatimBlockLine, "x"},
		{token.VerbatimBlockEnd, "f]"},
		nl, eof,
	})
}

func TestHTMLStartTags(t *testing.T) {
	expectTokens(t, "<br/>", []tk{
		{token.HTMLStartTagOpen, "br"}, {token.HTMLSlashGreater, "/>"}, nl, eof,
	})
	expectTokens(t, `<a href="bbb">`, []tk{
		{token.HTMLStartTagOpen, "a"},
		{token.HTMLIdent, "href"},
		{token.HTMLEqual, "="},
		{token.HTMLQuotedString, "bbb"},
		{token.HTMLGreater, ">"},
		nl, eof,
	})
	expectTokens(t, "<img src = 'x' alt>", []tk{
		{token.HTMLStartTagOpen, "img"},
		{token.HTMLIdent, "src"},
		{token.HTMLEqual, "="},
		{token.HTMLQuotedString, "x"},
		{token.HTMLIdent, "alt"},
		{token.HTMLGreater, ">"},
		nl, eof,
	})
	expectTokens(t, "<a 1", []tk{
		{token.HTMLStartTagOpen, "a"}, text("1"), nl, eof,
	})
}

func TestHTMLTagEndsAtNewline(t *testing.T) {
	lx, _ := makeTestLexer("// <a\n// href")
	toks := collectAllTokens(lx)
	want := []token.Kind{token.Text, token.HTMLStartTagOpen, token.Newline, token.Text, token.Newline, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %v", tokensToString(toks))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected %v, got %v", i, k, toks[i].Kind)
		}
	}
}

func TestHTMLEndTags(t *testing.T) {
	toks := expectTokens(t, "</a >x", []tk{
		{token.HTMLEndTag, "a"}, text("x"), nl, eof,
	})
	if toks[0].Span.Start != 0 || toks[0].Span.End != 5 {
		t.Errorf("end tag span should cover the '>', got %v", toks[0].Span)
	}
	expectTokens(t, "</ 1>", []tk{
		text("</ "), text("1>"), nl, eof,
	})
}

func TestAngleAsText(t *testing.T) {
	expectTokens(t, "a < b", []tk{
		text("a "), text("<"), text(" b"), nl, eof,
	})
}

func TestVerbatimBlock(t *testing.T) {
	expectTokens(t, "// \\verbatim\n// Aaa\n// \\endverbatim", []tk{
		text(" "),
		{token.VerbatimBlockBegin, "verbatim"},
		{token.VerbatimBlockLine, " Aaa"},
		{token.VerbatimBlockLine, " "},
		{token.VerbatimBlockEnd, "endverbatim"},
		nl, eof,
	})
}

func TestVerbatimBlockKeepsSpecialCharacters(t *testing.T) {
	expectTokens(t, "\\code <b> \\brief @c\n\\endcode", []tk{
		{token.VerbatimBlockBegin, "code"},
		{token.VerbatimBlockLine, " <b> \\brief @c"},
		{token.VerbatimBlockEnd, "endcode"},
		nl, eof,
	})
}

func TestVerbatimBlockEndNeedsSameMarker(t *testing.T) {
	expectTokens(t, "\\code\n@endcode\n\\endcode", []tk{
		{token.VerbatimBlockBegin, "code"},
		{token.VerbatimBlockLine, "@endcode"},
		{token.VerbatimBlockEnd, "endcode"},
		nl, eof,
	})
}

func TestVerbatimBlockUnterminated(t *testing.T) {
	lx, _ := makeTestLexer("\\code\nint x;\n")
	toks := collectAllTokens(lx)
	want := []tk{
		{token.VerbatimBlockBegin, "code"},
		{token.VerbatimBlockLine, "int x;"},
		{token.VerbatimBlockLine, ""},
		eof,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %v", tokensToString(toks))
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || (w.kind != token.EOF && toks[i].Text != w.text) {
			t.Fatalf("token %d: expected %v(%q), got %v", i, w.kind, w.text, tokensToString(toks))
		}
	}
	if lx.State() != lexer.StateVerbatimBlockBody {
		t.Errorf("expected to stay in verbatim body, got %v", lx.State())
	}
	if lx.VerbatimEnd() != "\\endcode" {
		t.Errorf("unexpected pending end %q", lx.VerbatimEnd())
	}
}

func TestVerbatimLine(t *testing.T) {
	expectTokens(t, `\fn void *foo(const char *zzz = "\$");`, []tk{
		{token.VerbatimLineName, "fn"},
		{token.VerbatimLineText, ` void *foo(const char *zzz = "\$");`},
		nl, eof,
	})
	expectTokens(t, "/** \\fn void foo(); */", []tk{
		text(" "),
		{token.VerbatimLineName, "fn"},
		{token.VerbatimLineText, " void foo(); "},
		nl, nl, eof,
	})
	expectTokens(t, "\\fn", []tk{
		{token.VerbatimLineName, "fn"},
		{token.VerbatimLineText, ""},
		nl, eof,
	})
}

func TestCustomRegistry(t *testing.T) {
	reg := commands.New()
	if err := reg.RegisterVerbatimBlock("raw", "endraw"); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.h", []byte("\\raw a\\endraw \\code")))
	lx := lexer.New(file, file.FullSpan(), lexer.Options{Commands: reg})
	toks := collectAllTokens(lx)
	want := []token.Kind{
		token.VerbatimBlockBegin, token.VerbatimBlockLine, token.VerbatimBlockEnd,
		token.Text, token.Command, token.Newline, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %v", tokensToString(toks))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected %v, got %v", i, k, toks[i].Kind)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("/** Aaa")
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.Text || toks[0].Text != " Aaa" {
		t.Fatalf("got %v", tokensToString(toks))
	}
	codes := rep.codes()
	if len(codes) != 1 || codes[0] != diag.LexUnterminatedBlockComment {
		t.Fatalf("unexpected diagnostics %v", codes)
	}
	if rep.diagnostics[0].Severity != diag.SevWarning {
		t.Errorf("expected warning, got %v", rep.diagnostics[0].Severity)
	}
}

func TestUnterminatedQuotedString(t *testing.T) {
	lx, rep := makeTestLexer(`<a href="bbb`)
	toks := collectAllTokens(lx)
	if toks[3].Kind != token.HTMLQuotedString || toks[3].Text != "bbb" {
		t.Fatalf("got %v", tokensToString(toks))
	}
	lx.Reset()
	collectAllTokens(lx)
	codes := rep.codes()
	if len(codes) != 1 || codes[0] != diag.LexUnterminatedQuotedString {
		t.Fatalf("expected a single warning after reset, got %v", codes)
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("// Aaa")
	collectAllTokens(lx)
	for range 3 {
		tok := lx.Next()
		if tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
		if !tok.Span.Empty() || tok.Span.Start != 6 {
			t.Fatalf("unexpected EOF span %v", tok.Span)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("\\brief x")
	p := lx.Peek()
	if p != lx.Peek() {
		t.Fatalf("repeated Peek changed the token")
	}
	n := lx.Next()
	if n != p {
		t.Fatalf("Next returned %v, Peek returned %v", n, p)
	}
	if lx.Next().Text != " x" {
		t.Fatalf("lost token after Peek")
	}
}

func TestResetRestarts(t *testing.T) {
	lx, _ := makeTestLexer("// <a href=x> \\code y\n// \\endcode")
	first := collectAllTokens(lx)
	lx.Reset()
	if lx.State() != lexer.StateNormal {
		t.Fatalf("expected normal state after reset")
	}
	second := lx.All()
	if tokensToString(first) != tokensToString(second) {
		t.Fatalf("reset changed output:\n%v\n%v", tokensToString(first), tokensToString(second))
	}
}

func TestSubSpan(t *testing.T) {
	fs := source.NewFileSet()
	content := "int x; // Aaa\nint y;"
	file := fs.Get(fs.AddVirtual("x.c", []byte(content)))
	start := uint32(strings.Index(content, "//"))
	lx := lexer.New(file, source.Span{File: file.ID, Start: start, End: start + 6}, lexer.Options{})
	toks := lx.All()
	if len(toks) != 3 || toks[0].Text != " Aaa" {
		t.Fatalf("got %v", tokensToString(toks))
	}
	if toks[2].Span.Start != start+6 {
		t.Fatalf("EOF should sit at the end of the span, got %v", toks[2].Span)
	}
}
