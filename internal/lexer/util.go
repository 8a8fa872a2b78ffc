package lexer

import "doccomment/internal/token"

func isHorizontalSpace(b byte) bool { return token.IsHorizontalSpace(b) }

func isSpace(b byte) bool {
	return b == '\n' || b == '\r' || token.IsHorizontalSpace(b)
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9')
}

// isEscapable lists the characters that form an escape after \ or @.
func isEscapable(b byte) bool {
	switch b {
	case '\\', '@', '&', '$', '#', '<', '>', '%', '"', '.', ':':
		return true
	default:
		return false
	}
}

// isFormulaSuffix completes \f into \f$ \f[ \f] \f{ \f}.
func isFormulaSuffix(b byte) bool {
	switch b {
	case '$', '[', ']', '{', '}':
		return true
	default:
		return false
	}
}

func isHTMLIdentStart(b byte) bool { return isLetter(b) }
func isHTMLIdentChar(b byte) bool  { return isAlnum(b) }

func startsHTMLTagToken(b byte) bool {
	return isHTMLIdentStart(b) || b == '=' || b == '"' || b == '\'' || b == '>' || b == '/'
}

func allSpace(b []byte) bool {
	for _, c := range b {
		if !isHorizontalSpace(c) {
			return false
		}
	}
	return true
}
