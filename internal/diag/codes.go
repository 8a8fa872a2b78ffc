package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnterminatedBlockComment Code = 1001
	LexUnterminatedQuotedString Code = 1002

	// Разбор комментария
	DocInfo                   Code = 2000
	DocEmptyParagraph         Code = 2001
	DocMissingParamName       Code = 2002
	DocMalformedDirection     Code = 2003
	DocDirectionSpelling      Code = 2004
	DocHTMLTagNotClosed       Code = 2005
	DocHTMLStrayToken         Code = 2006
	DocHTMLUnbalancedEndTag   Code = 2007
	DocHTMLVoidEndTag         Code = 2008
	DocHTMLUnclosedAtEnd      Code = 2009
	DocUnterminatedVerbatim   Code = 2010
	DocDuplicateBrief         Code = 2011
	DocMissingCommandArgument Code = 2012
	DocHTMLStartEndMismatch   Code = 2013
	DocStrayVerbatimEnd       Code = 2014

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Конфигурация
	CfgInvalid Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedQuotedString: "Unterminated quoted attribute value",
	DocInfo:                     "Documentation comment information",
	DocEmptyParagraph:           "Empty paragraph after block command",
	DocMissingParamName:         "Missing parameter name",
	DocMalformedDirection:       "Malformed parameter direction",
	DocDirectionSpelling:        "Non-canonical parameter direction",
	DocHTMLTagNotClosed:         "HTML start tag not closed",
	DocHTMLStrayToken:           "Unexpected token in HTML tag",
	DocHTMLUnbalancedEndTag:     "HTML end tag does not match any start tag",
	DocHTMLVoidEndTag:           "End tag for a void HTML element",
	DocHTMLUnclosedAtEnd:        "HTML element left open at end of comment",
	DocUnterminatedVerbatim:     "Verbatim block not terminated",
	DocDuplicateBrief:           "Duplicate brief command",
	DocMissingCommandArgument:   "Command expects an argument",
	DocHTMLStartEndMismatch:     "HTML end tag closes a different element",
	DocStrayVerbatimEnd:         "Verbatim end command without a matching begin",
	IOLoadFileError:             "Failed to load file",
	IOCacheError:                "Parse cache failure",
	CfgInvalid:                  "Invalid configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DOC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
