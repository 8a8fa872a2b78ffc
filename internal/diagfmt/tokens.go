package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"doccomment/internal/source"
	"doccomment/internal/token"
)

type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Marker string `json:"marker,omitempty"`
	Start  uint32 `json:"start"`
	End    uint32 `json:"end"`
	Line   uint32 `json:"line"`
	Col    uint32 `json:"col"`
}

// CommentTokens is the JSON shape of one comment's token stream.
type CommentTokens struct {
	Start  uint32        `json:"start"`
	End    uint32        `json:"end"`
	Tokens []TokenOutput `json:"tokens"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате, по одному на строку.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-20s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Marker != token.MarkerNone {
			fmt.Fprintf(w, " %c", rune(tok.Marker))
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// TokensOutput converts a token stream for JSON output.
func TokensOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		to := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Line:  pos.Line,
			Col:   pos.Col,
		}
		if tok.Marker != token.MarkerNone {
			to.Marker = string(rune(tok.Marker))
		}
		out = append(out, to)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensJSON выводит токены комментариев в JSON формате
func FormatTokensJSON(w io.Writer, comments []CommentTokens) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(comments)
}
