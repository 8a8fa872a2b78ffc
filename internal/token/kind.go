package token

// Kind represents the category of a comment token.
type Kind uint8

const (
	// Invalid indicates a zero token.
	Invalid Kind = iota
	// EOF marks the end of the comment.
	EOF
	// Newline separates physical lines; two in a row end a paragraph.
	Newline
	// Text is a run of plain text, an escape or a degraded markup char.
	Text
	// Command is \name or @name not claimed by a verbatim trait.
	Command

	// VerbatimBlockBegin opens a verbatim block (\code, \verbatim, \f[).
	VerbatimBlockBegin
	// VerbatimBlockLine is one opaque line of a verbatim block.
	VerbatimBlockLine
	// VerbatimBlockEnd closes a verbatim block.
	VerbatimBlockEnd
	// VerbatimLineName is a command whose argument is the rest of the line.
	VerbatimLineName
	// VerbatimLineText is that rest of the line.
	VerbatimLineText

	// HTMLStartTagOpen is '<' followed by the tag name.
	HTMLStartTagOpen
	// HTMLIdent is an attribute name or unquoted value inside a tag.
	HTMLIdent
	// HTMLEqual is '=' inside a tag.
	HTMLEqual
	// HTMLQuotedString is a quoted attribute value.
	HTMLQuotedString
	// HTMLGreater closes a start tag.
	HTMLGreater
	// HTMLSlashGreater closes a self-closing start tag.
	HTMLSlashGreater
	// HTMLEndTag is '</name' with an optional '>'.
	HTMLEndTag
)

var kindNames = [...]string{
	Invalid:            "Invalid",
	EOF:                "EOF",
	Newline:            "Newline",
	Text:               "Text",
	Command:            "Command",
	VerbatimBlockBegin: "VerbatimBlockBegin",
	VerbatimBlockLine:  "VerbatimBlockLine",
	VerbatimBlockEnd:   "VerbatimBlockEnd",
	VerbatimLineName:   "VerbatimLineName",
	VerbatimLineText:   "VerbatimLineText",
	HTMLStartTagOpen:   "HTMLStartTagOpen",
	HTMLIdent:          "HTMLIdent",
	HTMLEqual:          "HTMLEqual",
	HTMLQuotedString:   "HTMLQuotedString",
	HTMLGreater:        "HTMLGreater",
	HTMLSlashGreater:   "HTMLSlashGreater",
	HTMLEndTag:         "HTMLEndTag",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsHTMLTagPart reports whether k only occurs between HTMLStartTagOpen and the tag end.
func (k Kind) IsHTMLTagPart() bool {
	switch k {
	case HTMLIdent, HTMLEqual, HTMLQuotedString, HTMLGreater, HTMLSlashGreater:
		return true
	default:
		return false
	}
}

// IsVerbatim reports whether k belongs to a verbatim block or line.
func (k Kind) IsVerbatim() bool {
	return k >= VerbatimBlockBegin && k <= VerbatimLineText
}
