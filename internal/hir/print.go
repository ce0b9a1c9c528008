package hir

import (
	"fmt"
	"io"
	"strings"
)

// Printer is used to dump HIR to text format.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new HIR printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes the program to the writer.
func Dump(w io.Writer, p *Program) error {
	return NewPrinter(w).PrintProgram(p)
}

// PrintProgram prints results first, then top-level functions.
func (p *Printer) PrintProgram(prog *Program) error {
	for i := range prog.Results {
		p.PrintResult(&prog.Results[i])
	}
	for i := range prog.Funcs {
		p.PrintFunc(&prog.Funcs[i])
	}
	return p.err
}

// PrintResult prints a result header and its functions.
func (p *Printer) PrintResult(r *Result) {
	p.line("result %s%s%s", r.Sig.Name, paramsStr(r.Sig.Params), returnStr(r.Sig.ReturnType))
	p.indent++
	for i := range r.Funcs {
		p.PrintFunc(&r.Funcs[i])
	}
	p.indent--
}

// PrintFunc prints a function header and its calls.
func (p *Printer) PrintFunc(f *Function) {
	var sb strings.Builder
	sb.WriteString("fn")
	if f.Sig.Name != "" {
		sb.WriteString(" ")
		sb.WriteString(f.Sig.Name)
	}
	sb.WriteString(paramsStr(f.Sig.Params))
	sb.WriteString(returnStr(f.Sig.ReturnType))
	if f.Sig.Owner != "" {
		sb.WriteString(" => ")
		sb.WriteString(f.Sig.Owner)
	}
	p.line("%s", sb.String())

	p.indent++
	for _, c := range f.Calls {
		p.line("%s", c.String())
	}
	p.indent--
}

func (p *Printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func paramsStr(params Params) string {
	if params == nil {
		return ""
	}
	parts := make([]string, len(params))
	for i, prm := range params {
		parts[i] = prm.Name + ": " + prm.Type
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func returnStr(rt string) string {
	if rt == "" {
		return ""
	}
	return ": " + rt
}
