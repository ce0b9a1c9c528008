package parser

import (
	"fmt"

	"ro/internal/ast"
	"ro/internal/hir"
	"ro/internal/trace"
)

// Assemble builds the program from the raw block tree. Functions tagged with
// "=> owner" are moved into the result named owner, after its nested functions.
// On any error no program is returned.
func Assemble(raw ast.RawProgram, opts Options) (*hir.Program, error) {
	span := trace.Begin(opts.tracer(), trace.ScopePass, "assemble", opts.ParentSpan)
	defer span.End("")

	prog := &hir.Program{
		Results: make([]hir.Result, 0, len(raw.Results)),
	}

	// сначала сигнатуры result-групп: владельцы ищутся по имени
	byName := make(map[string]int, len(raw.Results))
	for i := range raw.Results {
		rr := &raw.Results[i]
		sig, err := ParseResultSig(rr.Signature)
		if err != nil {
			return nil, withFallbackSpan(err, rr.Span)
		}
		funcs, err := convertFuncs(rr.Funcs, opts)
		if err != nil {
			return nil, fmt.Errorf("result %q: %w", sig.Name, err)
		}
		if _, dup := byName[sig.Name]; !dup {
			byName[sig.Name] = len(prog.Results)
		}
		prog.Results = append(prog.Results, hir.Result{Sig: sig, Funcs: funcs})
	}

	for i := range raw.Funcs {
		rf := &raw.Funcs[i]
		fn, err := convertFunc(rf, opts)
		if err != nil {
			return nil, err
		}
		if fn.Sig.Owner == "" {
			prog.Funcs = append(prog.Funcs, fn)
			continue
		}
		idx, ok := byName[fn.Sig.Owner]
		if !ok {
			return nil, newError(UnresolvedResultReference, rf.Span,
				"function %q refers to unknown result %q", fn.Sig.Name, fn.Sig.Owner)
		}
		prog.Results[idx].Funcs = append(prog.Results[idx].Funcs, fn)
	}

	span.WithExtra("funcs", fmt.Sprint(len(prog.Funcs))).
		WithExtra("results", fmt.Sprint(len(prog.Results)))
	return prog, nil
}

func convertFuncs(raw []ast.RawFunc, opts Options) ([]hir.Function, error) {
	funcs := make([]hir.Function, 0, len(raw))
	for i := range raw {
		fn, err := convertFunc(&raw[i], opts)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}
	return funcs, nil
}

func convertFunc(rf *ast.RawFunc, opts Options) (hir.Function, error) {
	sig, err := ParseFuncSig(rf.Signature)
	if err != nil {
		return hir.Function{}, withFallbackSpan(err, rf.Span)
	}
	calls, err := parseCalls(rf.Body, opts)
	if err != nil {
		if sig.Name != "" {
			return hir.Function{}, fmt.Errorf("fn %s: %w", sig.Name, err)
		}
		return hir.Function{}, err
	}
	return hir.Function{Sig: sig, Calls: calls}, nil
}
