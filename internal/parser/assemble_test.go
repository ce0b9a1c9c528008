package parser

import (
	"errors"
	"strings"
	"testing"

	"ro/internal/diag"
	"ro/internal/hir"
	"ro/internal/lexer"
)

func TestParseSourceResultEndToEnd(t *testing.T) {
	prog, err := ParseSource("result add(one:float,two:float){fn{return one+two}}", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Funcs) != 0 {
		t.Fatalf("expected no top-level functions, got %d", len(prog.Funcs))
	}
	if len(prog.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(prog.Results))
	}
	res := prog.Results[0]
	if res.Sig.Name != "add" || res.Sig.Params.Len() != 2 {
		t.Fatalf("unexpected result signature %+v", res.Sig)
	}
	if len(res.Funcs) != 1 {
		t.Fatalf("expected one function in result, got %d", len(res.Funcs))
	}
	expectCalls(t, res.Funcs[0].Calls, "ret one")
}

func TestParseSourceBlockCommentExample(t *testing.T) {
	prog, err := ParseSource("fn { //* a\n return one + two\n */\n}", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Funcs) != 1 {
		t.Fatalf("expected one function, got %d", len(prog.Funcs))
	}
	expectCalls(t, prog.Funcs[0].Calls, "ret one")
}

func TestParseSourceLenientHeaders(t *testing.T) {
	prog, err := ParseSource("fn main int { ret 0 }\nresult add : float { fn { ret 1 } }", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Funcs) != 1 || prog.Funcs[0].Sig.Name != "main" || prog.Funcs[0].Sig.HasParams() {
		t.Fatalf("unexpected functions %+v", prog.Funcs)
	}
	expectCalls(t, prog.Funcs[0].Calls, "ret 0")
	if len(prog.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(prog.Results))
	}
	sig := prog.Results[0].Sig
	if sig.Name != "add" || sig.Params == nil || sig.Params.Len() != 0 || sig.ReturnType != "" {
		t.Fatalf("unexpected result signature %+v", sig)
	}
}

func TestAssembleOwnerRehoming(t *testing.T) {
	src := `
fn first(a: int) => sum { ret a }
result sum(a: int): int {
	fn nested { ret 0 }
}
fn main { var x = 1 }
fn second(a: int) => sum { ret 1 }
`
	prog, err := ParseSource(src, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Funcs) != 1 || prog.Funcs[0].Sig.Name != "main" {
		t.Fatalf("expected only main at top level, got %+v", prog.Funcs)
	}
	res, ok := prog.Result("sum")
	if !ok {
		t.Fatalf("result sum not found")
	}
	var names []string
	for _, fn := range res.Funcs {
		names = append(names, fn.Sig.Name)
	}
	if strings.Join(names, ",") != "nested,first,second" {
		t.Fatalf("result funcs order = %v", names)
	}
	if prog.FuncCount() != 4 {
		t.Fatalf("FuncCount = %d", prog.FuncCount())
	}
	expectCalls(t, res.Funcs[2].Calls, "ret 1")
}

func TestAssembleUnresolvedResult(t *testing.T) {
	prog, err := ParseSource("fn f => missing { ret 0 } result other { }", Options{})
	if prog != nil {
		t.Fatalf("no program expected on failure")
	}
	if !errors.Is(err, ErrUnresolvedResult) {
		t.Fatalf("expected ErrUnresolvedResult, got %v", err)
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	d := perr.Diagnostic()
	if d.Code != diag.SynUnresolvedResult || d.Severity != diag.SevError {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if perr.Span.Empty() {
		t.Fatalf("error should carry the block span")
	}
}

func TestAssembleErrorsPropagate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unterminated fn", "fn main { ret 0", ErrUnterminatedBlock},
		{"bad fn header", "fn main(a int) { }", ErrMalformedSignature},
		{"bad nested header", "result r { fn (a:) { } }", ErrMalformedSignature},
		{"empty result header", "result { }", ErrMalformedSignature},
		{"unterminated invoke", "fn main { print(a }", ErrUnterminatedBlock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseSource(tt.src, Options{})
			if prog != nil {
				t.Fatalf("no program expected on failure")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAssembleEmptyResultHeaderSpan(t *testing.T) {
	_, err := ParseSource("result { }", Options{})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if perr.Span.Start != 0 || perr.Span.End != 10 {
		t.Fatalf("span = %d..%d, want the block span 0..10", perr.Span.Start, perr.Span.End)
	}
}

func TestParseWarningsDoNotFail(t *testing.T) {
	opts, bag := withBag()
	prog, err := Parse(lexer.TokenizeString("fn main { var x = 1 + 2 + 3 ret x }"), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectCalls(t, prog.Funcs[0].Calls, "var x", "ret x")
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("expected one warning, got %s", diagnosticsSummary(bag))
	}
}

func TestParseEmptyInput(t *testing.T) {
	prog, err := ParseSource("  // nothing here\n", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.FuncCount() != 0 || len(prog.Results) != 0 {
		t.Fatalf("expected an empty program, got %+v", prog)
	}
}

func TestParseAnonymousAndPrinted(t *testing.T) {
	prog, err := ParseSource("result add(a:int,b:int):int { fn { var c = a + b ret c } }", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sb strings.Builder
	if err := hir.Dump(&sb, prog); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := "result add(a: int, b: int): int\n" +
		"  fn\n" +
		"    var c\n" +
		"    c = a + b\n" +
		"    ret c\n"
	if sb.String() != want {
		t.Fatalf("dump mismatch:\n%s\nwant:\n%s", sb.String(), want)
	}
}
