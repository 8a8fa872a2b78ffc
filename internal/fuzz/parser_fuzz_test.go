package fuzztests

import (
	"testing"
	"time"

	"doccomment/internal/ast"
	"doccomment/internal/diag"
	"doccomment/internal/extract"
	"doccomment/internal/parser"
	"doccomment/internal/source"
	"doccomment/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.h", input))
		bag := diag.NewBag(128)
		builder := ast.NewBuilder(ast.Hints{}, nil)
		opts := parser.Options{Reporter: diag.BagReporter{Bag: bag}}

		spans := []source.Span{file.FullSpan()}
		for _, g := range extract.Comments(file, extract.ModeAll) {
			spans = append(spans, g.Span)
		}
		for _, sp := range spans {
			root := parser.Parse(file, sp, builder, opts)
			if err := testkit.CheckTreeInvariants(builder, root, file); err != nil {
				t.Fatalf("broken tree for %q: %v", truncateForLog(input, 200), err)
			}
		}
		for _, d := range bag.Items() {
			if d.Severity == diag.SevError {
				t.Fatalf("parser reported an error %s: %s", d.Code.ID(), d.Message)
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// конструкции, где парсер откатывается и перечитывает токены
	f.Add([]byte("// \\param [in"))
	f.Add([]byte("// \\param [in,out,in] x"))
	f.Add([]byte("// <a b=c d='e' f=\"g\" / >"))
	f.Add([]byte("// \\verbatim\n// \\verbatim\n// \\endverbatim\n// \\endverbatim"))
	f.Add([]byte("// \\c\n// \\c\n// \\c"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.h", input))
			builder := ast.NewBuilder(ast.Hints{}, nil)
			parser.Parse(file, file.FullSpan(), builder, parser.Options{})
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
