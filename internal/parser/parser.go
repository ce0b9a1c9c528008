// Package parser turns a filtered token stream into a hir.Program: structural
// block extraction, fn/result header parsing, body call parsing and assembly.
package parser

import (
	"ro/internal/ast"
	"ro/internal/diag"
	"ro/internal/hir"
	"ro/internal/lexer"
	"ro/internal/source"
	"ro/internal/token"
	"ro/internal/trace"
)

type Options struct {
	// Reporter receives warnings (unsupported expressions). May be nil.
	Reporter diag.Reporter
	// Tracer receives pass spans. nil disables tracing.
	Tracer trace.Tracer
	// ParentSpan is the trace span the passes hang off.
	ParentSpan uint64
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

// Extract is ExtractBlocks wrapped into a trace span.
func Extract(tokens token.List, opts Options) (ast.RawProgram, error) {
	span := trace.Begin(opts.tracer(), trace.ScopePass, "extract", opts.ParentSpan)
	defer span.End("")
	return ExtractBlocks(tokens)
}

// Parse runs block extraction and assembly over an already filtered stream.
func Parse(tokens token.List, opts Options) (*hir.Program, error) {
	raw, err := Extract(tokens, opts)
	if err != nil {
		return nil, err
	}
	return Assemble(raw, opts)
}

// ParseFile tokenizes, filters and parses one source file.
func ParseFile(file *source.File, opts Options) (*hir.Program, error) {
	span := trace.Begin(opts.tracer(), trace.ScopePass, "tokenize", opts.ParentSpan)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	span.End("")
	return Parse(tokens, opts)
}

// ParseSource parses source text held in memory.
func ParseSource(src string, opts Options) (*hir.Program, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	return ParseFile(fs.Get(id), opts)
}
