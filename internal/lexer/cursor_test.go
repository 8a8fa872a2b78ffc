package lexer

import (
	"testing"

	"doccomment/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.h", []byte(content))
	return fs.Get(id)
}

// TestCursorLimit проверяет, что курсор не выходит за Limit
func TestCursorLimit(t *testing.T) {
	file := createFile("abcdef")
	c := NewCursor(file, 1, 3)

	if c.Peek() != 'b' {
		t.Fatalf("Expected peek 'b', got %c", c.Peek())
	}
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'b' || b1 != 'c' {
		t.Fatalf("Peek2 = %c %c %v", b0, b1, ok)
	}
	c.Bump()
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 should not look past Limit")
	}
	c.Bump()
	if !c.EOF() {
		t.Fatalf("Expected EOF at Limit")
	}
	if c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("reads past Limit must return 0")
	}
	if c.Rest() != nil {
		t.Fatalf("Rest at EOF should be nil")
	}
}

func TestCursorClampsRange(t *testing.T) {
	file := createFile("abc")
	c := NewCursor(file, 10, 20)
	if c.Limit != 3 || c.Off != 3 || !c.EOF() {
		t.Fatalf("unexpected cursor %+v", c)
	}
}

func TestCursorMarks(t *testing.T) {
	file := createFile("foo bar")
	c := NewCursor(file, 0, 7)

	m := c.Mark()
	c.EatWhile(isLetter)
	if got := c.TextFrom(m); got != "foo" {
		t.Fatalf("TextFrom = %q", got)
	}
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 3 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	if c.Eat('x') {
		t.Fatalf("Eat should not match")
	}
	if !c.Eat(' ') {
		t.Fatalf("Eat should match blank")
	}
	if c.Index([]byte("ar")) != 1 {
		t.Fatalf("Index = %d", c.Index([]byte("ar")))
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset did not rewind")
	}
}
