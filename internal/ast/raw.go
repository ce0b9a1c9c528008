// Package ast holds the raw block tree produced by structural extraction:
// header and body token spans for every fn and result block, before any
// signature or body is interpreted.
package ast

import (
	"ro/internal/source"
	"ro/internal/token"
)

// RawFunc is the header and body of one fn block.
type RawFunc struct {
	Signature token.List // токены между 'fn' и '{'
	Body      token.List // токены внутри парных фигурных скобок
	Span      source.Span
}

// RawResult is the header of one result block plus the fn blocks found in its body.
type RawResult struct {
	Signature token.List
	Funcs     []RawFunc
	Span      source.Span
}

// RawProgram is the output of structural extraction. Ownership tags (=>) are not
// resolved at this stage.
type RawProgram struct {
	Funcs   []RawFunc
	Results []RawResult
}

// Empty reports whether no block was found.
func (p *RawProgram) Empty() bool {
	return len(p.Funcs) == 0 && len(p.Results) == 0
}

// FuncCount returns the number of fn blocks, nested ones included.
func (p *RawProgram) FuncCount() int {
	n := len(p.Funcs)
	for i := range p.Results {
		n += len(p.Results[i].Funcs)
	}
	return n
}
