package parser

import (
	"fmt"
	"strings"

	"ro/internal/diag"
	"ro/internal/hir"
	"ro/internal/source"
	"ro/internal/token"
)

// assignment is an assignment before reduction: dest = expr, where expr is the
// flat run "value (op value)*". It never leaves the parser.
type assignment struct {
	dest token.Token
	expr token.List
}

func (a assignment) span() source.Span {
	if len(a.expr) == 0 {
		return a.dest.Span
	}
	return a.dest.Span.Cover(a.expr.Span())
}

// reduce maps an assignment onto Move (one token) or Operate (three tokens).
// Any other expression length yields ok == false and no call.
func reduce(a assignment) (call hir.Call, ok bool, err error) {
	switch len(a.expr) {
	case 1:
		return hir.NewMove(a.span(), a.dest.Text, a.expr[0].Text), true, nil
	case 3:
		opTok := a.expr[1]
		op, opErr := hir.OperationFromToken(opTok.Text)
		if opErr != nil {
			return hir.Call{}, false, &Error{
				Kind: UnknownOperator,
				Span: opTok.Span,
				Msg:  fmt.Sprintf("%q is not a binary operator", opTok.Text),
				Err:  opErr,
			}
		}
		return hir.NewOperate(a.span(), a.dest.Text, a.expr[0].Text, op, a.expr[2].Text), true, nil
	default:
		return hir.Call{}, false, nil
	}
}

// ParseCalls turns a function body into its call sequence.
func ParseCalls(body token.List) ([]hir.Call, error) {
	return parseCalls(body, Options{})
}

func parseCalls(body token.List, opts Options) ([]hir.Call, error) {
	cp := callParser{cur: newTokenCursor(body), opts: opts}
	if err := cp.run(); err != nil {
		return nil, err
	}
	return cp.calls, nil
}

type callParser struct {
	cur   tokenCursor
	calls []hir.Call
	opts  Options
}

func (cp *callParser) run() error {
	for !cp.cur.done() {
		t, _ := cp.cur.next()
		var err error
		switch {
		case t.Kind == token.KwReturn:
			cp.parseReturn(t)
		case t.Kind == token.KwVar:
			err = cp.parseVar(t)
		case t.Kind == token.Ident && cp.cur.at(token.Assign):
			cp.cur.next()
			err = cp.parseAssignment(t)
		case t.Kind == token.Ident && cp.cur.at(token.LParen):
			err = cp.parseInvoke(t)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// parseReturn takes exactly the next token as the value; at the end of the
// body the return is bare.
func (cp *callParser) parseReturn(kw token.Token) {
	val, ok := cp.cur.next()
	if !ok {
		cp.calls = append(cp.calls, hir.NewReturn(kw.Span, ""))
		return
	}
	cp.calls = append(cp.calls, hir.NewReturn(kw.Span.Cover(val.Span), val.Text))
}

func (cp *callParser) parseVar(kw token.Token) error {
	name, ok := cp.cur.next()
	if !ok {
		cp.warn(diag.SynUnsupportedExpression, kw.Span, "'var' without a name is ignored")
		return nil
	}
	cp.calls = append(cp.calls, hir.NewDeclareVar(kw.Span.Cover(name.Span), name.Text))
	if !cp.cur.at(token.Assign) {
		return nil
	}
	cp.cur.next()
	return cp.parseAssignment(name)
}

func (cp *callParser) parseAssignment(dest token.Token) error {
	a := assignment{dest: dest, expr: cp.captureExpr()}
	call, ok, err := reduce(a)
	if err != nil {
		return err
	}
	if !ok {
		cp.warn(diag.SynUnsupportedExpression, a.span(),
			fmt.Sprintf("assignment to %q with a %d-token expression is not supported, call omitted", dest.Text, len(a.expr)))
		return nil
	}
	cp.calls = append(cp.calls, call)
	return nil
}

// captureExpr takes the first value token, then absorbs "op value" pairs while
// the next token is a binary operator.
func (cp *callParser) captureExpr() token.List {
	start := cp.cur.pos
	if _, ok := cp.cur.next(); !ok {
		return token.List{}
	}
	for {
		op, ok := cp.cur.peek()
		if !ok || !token.IsBinaryOp(op.Text) {
			break
		}
		cp.cur.next()
		if _, ok := cp.cur.next(); !ok {
			break
		}
	}
	return cp.cur.toks.Clone(start, cp.cur.pos)
}

// parseInvoke reads "name ( arg , ... )" with the cursor on '('.
func (cp *callParser) parseInvoke(name token.Token) error {
	open := cp.cur.pos
	closeIdx, err := matchClose(cp.cur.toks, open, token.LParen, token.RParen)
	if err != nil {
		return err
	}
	args := splitArgs(cp.cur.toks[open+1 : closeIdx])
	cp.cur.pos = closeIdx + 1
	cp.calls = append(cp.calls, hir.NewInvoke(name.Span.Cover(cp.cur.last().Span), name.Text, args))
	return nil
}

// splitArgs cuts argument tokens on commas outside nested parens. Each argument
// is the concatenated text of its tokens: "g ( a ) , b" gives ["g(a)", "b"].
// Empty arguments from stray commas are dropped.
func splitArgs(toks token.List) []string {
	args := []string{}
	var (
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
		}
	}
	for _, t := range toks {
		switch t.Kind {
		case token.Comma:
			if depth == 0 {
				flush()
				continue
			}
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		cur.WriteString(t.Text)
	}
	flush()
	return args
}

func (cp *callParser) warn(code diag.Code, sp source.Span, msg string) {
	if cp.opts.Reporter == nil {
		return
	}
	cp.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil)
}
