package diag

import (
	"testing"

	"doccomment/internal/source"
)

func TestCodeIDPrefixes(t *testing.T) {
	tests := map[Code]string{
		LexUnterminatedBlockComment: "LEX1001",
		DocMissingParamName:         "DOC2002",
		IOLoadFileError:             "IO4001",
		CfgInvalid:                  "CFG5001",
		UnknownCode:                 "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if Code(2999).Title() != "Unknown error" {
		t.Fatalf("unregistered code title = %q", Code(2999).Title())
	}
}

func TestEveryCodeHasDescription(t *testing.T) {
	codes := []Code{
		LexInfo, LexUnterminatedBlockComment, LexUnterminatedQuotedString,
		DocInfo, DocEmptyParagraph, DocMissingParamName, DocMalformedDirection, DocDirectionSpelling,
		DocHTMLTagNotClosed, DocHTMLStrayToken, DocHTMLUnbalancedEndTag, DocHTMLVoidEndTag,
		DocHTMLUnclosedAtEnd, DocUnterminatedVerbatim, DocDuplicateBrief, DocMissingCommandArgument,
		DocHTMLStartEndMismatch, DocStrayVerbatimEnd,
		IOLoadFileError, IOCacheError, CfgInvalid,
	}
	for _, c := range codes {
		if _, ok := codeDescription[c]; !ok {
			t.Errorf("code %s has no description", c.ID())
		}
	}
}

func TestBagLimitAndSeverity(t *testing.T) {
	bag := NewBag(2)
	bag.Add(New(SevInfo, DocInfo, source.Span{}, "a"))
	if bag.HasWarnings() {
		t.Fatal("info counted as warning")
	}
	bag.Add(New(SevWarning, DocEmptyParagraph, source.Span{}, "b"))
	if bag.Add(New(SevError, IOLoadFileError, source.Span{}, "c")) {
		t.Fatal("limit not enforced")
	}
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("unexpected severities: warnings=%v errors=%v", bag.HasWarnings(), bag.HasErrors())
	}
	if bag.Dropped() != 1 || bag.Len() != 2 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}

	unlimited := NewBag(0)
	for i := 0; i < 100; i++ {
		unlimited.Add(New(SevInfo, DocInfo, source.Span{}, "x"))
	}
	if unlimited.Len() != 100 {
		t.Fatalf("unlimited bag kept %d", unlimited.Len())
	}
}

func TestBagSortDedupMerge(t *testing.T) {
	a := NewBag(10)
	a.Add(New(SevWarning, DocEmptyParagraph, source.Span{Start: 10, End: 12}, "late"))
	a.Add(New(SevInfo, DocInfo, source.Span{Start: 1, End: 2}, "info"))
	b := NewBag(10)
	b.Add(New(SevWarning, DocHTMLTagNotClosed, source.Span{Start: 1, End: 2}, "warn"))
	b.Add(New(SevWarning, DocEmptyParagraph, source.Span{Start: 10, End: 12}, "late again"))

	a.Merge(b)
	a.Sort()
	a.Dedup()

	items := a.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(items))
	}
	if items[0].Code != DocHTMLTagNotClosed || items[1].Code != DocInfo || items[2].Message != "late" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestReportBuilder(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	sp := source.Span{Start: 3, End: 7}

	b := ReportWarning(r, DocDirectionSpelling, sp, "spaces in direction").
		WithNote(sp, "written here").
		WithFix("use canonical direction", TextEdit{Span: sp, NewText: "[in]"})
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Emit must be idempotent, got %d diagnostics", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || !d.Fixes[0].IsPreferred {
		t.Fatalf("builder lost details: %+v", d)
	}
	if d.Fixes[0].Applicability != FixApplicabilityAlwaysSafe {
		t.Fatalf("applicability = %s", d.Fixes[0].Applicability)
	}

	// nil reporter: whole chain is a no-op
	ReportWarning(nil, DocInfo, sp, "x").WithNote(sp, "y").Emit()
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(DocInfo, SevInfo, sp, "same", nil, nil)
	r.Report(DocInfo, SevInfo, sp, "same", nil, nil)
	r.Report(DocInfo, SevInfo, sp, "other", nil, nil)
	r.Report(DocInfo, SevWarning, sp, "same", nil, nil)
	if bag.Len() != 3 {
		t.Fatalf("bag has %d diagnostics, want 3", bag.Len())
	}
	NewDedupReporter(nil).Report(DocInfo, SevInfo, sp, "", nil, nil)
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.h", []byte("/// \\param[ in ] x\n/// <b\n"))
	diags := []Diagnostic{
		New(SevWarning, DocHTMLTagNotClosed, source.Span{File: id, Start: 23, End: 25}, "tag <b> not closed"),
		New(SevWarning, DocDirectionSpelling, source.Span{File: id, Start: 10, End: 16}, "spaces in direction").
			WithNote(source.Span{File: id, Start: 4, End: 10}, "in this command"),
	}
	got := FormatGoldenDiagnostics(diags, fs, true)
	want := "note DOC2004 a.h:1:5 in this command\n" +
		"warning DOC2004 a.h:1:11 spaces in direction\n" +
		"warning DOC2005 a.h:2:5 tag <b> not closed"
	if got != want {
		t.Fatalf("golden mismatch:\n%s\nwant:\n%s", got, want)
	}
	if FormatGoldenDiagnostics(nil, fs, false) != "" {
		t.Fatal("empty input must render empty")
	}
}
