package lexer

import (
	"doccomment/internal/commands"
	"doccomment/internal/diag"
	"doccomment/internal/source"
)

type Options struct {
	// Reporter может быть nil: тогда предупреждения теряются, лексинг продолжается.
	Reporter diag.Reporter
	// Commands decides which names open verbatim blocks and lines; nil means commands.Default().
	Commands *commands.Registry
}

// warn goes through a DedupReporter installed by New, so a Reset does not
// duplicate output.
func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
}
