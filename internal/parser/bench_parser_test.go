package parser_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ro/internal/lexer"
	"ro/internal/parser"
	"ro/internal/token"
)

func exampleTokens(b *testing.B, times int) token.List {
	b.Helper()
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "examples", "*.ro"))
	if err != nil {
		b.Fatal(err)
	}
	if len(paths) == 0 {
		b.Skip("no example sources")
	}
	var sb strings.Builder
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			b.Fatal(err)
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	return lexer.TokenizeString(strings.Repeat(sb.String(), times))
}

func BenchmarkExtractBlocks(b *testing.B) {
	tokens := exampleTokens(b, 100)
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := parser.ExtractBlocks(tokens); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssemble(b *testing.B) {
	raw, err := parser.ExtractBlocks(exampleTokens(b, 100))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := parser.Assemble(raw, parser.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseSource covers the whole path from text to program.
func BenchmarkParseSource(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "examples", "owner.ro"))
	if err != nil {
		b.Fatal(err)
	}
	src := string(data)
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := parser.ParseSource(src, parser.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
