package token

import (
	"doccomment/internal/source"
)

// Marker is the character that introduced a command.
type Marker uint8

const (
	MarkerNone      Marker = 0
	MarkerBackslash Marker = '\\'
	MarkerAt        Marker = '@'
)

// Token represents a single comment token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Marker is set for Command, VerbatimBlockBegin/End and VerbatimLineName.
	Marker Marker
	// EndsLine is set on Text tokens that reach the end of their physical line.
	EndsLine bool
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsWhitespaceText reports whether t is a Text token made of blanks only.
func (t Token) IsWhitespaceText() bool {
	if t.Kind != Text {
		return false
	}
	for i := 0; i < len(t.Text); i++ {
		if !IsHorizontalSpace(t.Text[i]) {
			return false
		}
	}
	return true
}

// IsHorizontalSpace matches the blanks a comment line may contain.
func IsHorizontalSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\f', '\v':
		return true
	default:
		return false
	}
}
