package parser

import (
	"ro/internal/ast"
	"ro/internal/token"
)

// ExtractBlocks splits a filtered token stream into fn and result blocks.
// Tokens outside any block are skipped; ownership tags are left unresolved.
func ExtractBlocks(tokens token.List) (ast.RawProgram, error) {
	var prog ast.RawProgram
	for i := 0; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case token.KwFn:
			fn, end, err := extractFunc(tokens, i)
			if err != nil {
				return ast.RawProgram{}, err
			}
			prog.Funcs = append(prog.Funcs, fn)
			i = end
		case token.KwResult:
			res, end, err := extractResult(tokens, i)
			if err != nil {
				return ast.RawProgram{}, err
			}
			prog.Results = append(prog.Results, res)
			i = end
		}
	}
	return prog, nil
}

// extractFuncs is the fn-only extraction applied to result bodies.
func extractFuncs(tokens token.List) ([]ast.RawFunc, error) {
	var funcs []ast.RawFunc
	for i := 0; i < len(tokens); i++ {
		if tokens[i].Kind != token.KwFn {
			continue
		}
		fn, end, err := extractFunc(tokens, i)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
		i = end
	}
	return funcs, nil
}

func extractFunc(tokens token.List, kw int) (ast.RawFunc, int, error) {
	open, closeIdx, err := findBlock(tokens, kw)
	if err != nil {
		return ast.RawFunc{}, 0, err
	}
	return ast.RawFunc{
		Signature: tokens.Clone(kw+1, open),
		Body:      tokens.Clone(open+1, closeIdx),
		Span:      tokens[kw].Span.Cover(tokens[closeIdx].Span),
	}, closeIdx, nil
}

func extractResult(tokens token.List, kw int) (ast.RawResult, int, error) {
	open, closeIdx, err := findBlock(tokens, kw)
	if err != nil {
		return ast.RawResult{}, 0, err
	}
	funcs, err := extractFuncs(tokens[open+1 : closeIdx])
	if err != nil {
		return ast.RawResult{}, 0, err
	}
	return ast.RawResult{
		Signature: tokens.Clone(kw+1, open),
		Funcs:     funcs,
		Span:      tokens[kw].Span.Cover(tokens[closeIdx].Span),
	}, closeIdx, nil
}

// findBlock locates the block introduced by the keyword at tokens[kw]: the index
// of the first '{' after it and the index of its matching '}'.
func findBlock(tokens token.List, kw int) (open, closeIdx int, err error) {
	open = -1
	for i := kw + 1; i < len(tokens); i++ {
		if tokens[i].Kind == token.LBrace {
			open = i
			break
		}
	}
	if open < 0 {
		return 0, 0, newError(UnterminatedBlock, tokens[kw].Span,
			"%q header has no '{' before end of input", tokens[kw].Text)
	}
	closeIdx, err = matchClose(tokens, open, token.LBrace, token.RBrace)
	if err != nil {
		return 0, 0, err
	}
	return open, closeIdx, nil
}

// matchClose returns the index of the delimiter closing tokens[open]. Depth
// starts at 1 and the scan never reads past the end of the list.
func matchClose(tokens token.List, open int, openKind, closeKind token.Kind) (int, error) {
	depth := 1
	for i := open + 1; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case openKind:
			depth++
		case closeKind:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, newError(UnterminatedBlock, tokens[open].Span,
		"%q is never closed", tokens[open].Text)
}
