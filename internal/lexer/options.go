package lexer

import (
	"ro/internal/diag"
	"ro/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда предупреждения игнорируем
}

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil)
	}
}
