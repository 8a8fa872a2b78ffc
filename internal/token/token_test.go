package token_test

import (
	"testing"

	"doccomment/internal/token"
)

func TestKindString(t *testing.T) {
	if token.HTMLSlashGreater.String() != "HTMLSlashGreater" {
		t.Fatalf("got %q", token.HTMLSlashGreater.String())
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Fatalf("out of range kind printed as %q", token.Kind(200).String())
	}
}

func TestIsHTMLTagPart(t *testing.T) {
	parts := []token.Kind{
		token.HTMLIdent, token.HTMLEqual, token.HTMLQuotedString,
		token.HTMLGreater, token.HTMLSlashGreater,
	}
	for _, k := range parts {
		if !k.IsHTMLTagPart() {
			t.Fatalf("%v should be a tag part", k)
		}
	}
	for _, k := range []token.Kind{token.HTMLStartTagOpen, token.HTMLEndTag, token.Text} {
		if k.IsHTMLTagPart() {
			t.Fatalf("%v must NOT be a tag part", k)
		}
	}
}

func TestIsVerbatim(t *testing.T) {
	for _, k := range []token.Kind{token.VerbatimBlockBegin, token.VerbatimBlockLine, token.VerbatimBlockEnd, token.VerbatimLineName, token.VerbatimLineText} {
		if !k.IsVerbatim() {
			t.Fatalf("%v should be verbatim", k)
		}
	}
	if token.Command.IsVerbatim() || token.HTMLStartTagOpen.IsVerbatim() {
		t.Fatal("non-verbatim kinds reported as verbatim")
	}
}

func TestIsWhitespaceText(t *testing.T) {
	tests := []struct {
		tok  token.Token
		want bool
	}{
		{token.Token{Kind: token.Text, Text: " \t "}, true},
		{token.Token{Kind: token.Text, Text: ""}, true},
		{token.Token{Kind: token.Text, Text: " a "}, false},
		{token.Token{Kind: token.Command, Text: " "}, false},
	}
	for _, tt := range tests {
		if got := tt.tok.IsWhitespaceText(); got != tt.want {
			t.Errorf("%+v: got %v, want %v", tt.tok, got, tt.want)
		}
	}
}
