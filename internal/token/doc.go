// Package token defines the lexical tokens of documentation comments.
// Invariants:
//   - Token.Span covers the bytes the token was produced from, decorations excluded.
//   - Token.Text holds the payload already unescaped (command name without the
//     leading marker, quoted values without quotes, verbatim lines as written).
//   - After EOF the stream only yields EOF.
package token
