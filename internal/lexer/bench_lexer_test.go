package lexer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ro/internal/lexer"
	"ro/internal/source"
)

// loadExamples склеивает testdata/examples/*.ro, повторяя корпус times раз.
func loadExamples(b *testing.B, times int) *source.File {
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
	src := strings.Repeat(sb.String(), times)
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("bench.ro", []byte(src)))
}

func BenchmarkTokenize(b *testing.B) {
	file := loadExamples(b, 100)
	b.SetBytes(int64(len(file.Content)))
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		lexer.TokenizeWithComments(file, lexer.Options{})
	}
}

func BenchmarkRemoveBlockComments(b *testing.B) {
	tokens := lexer.TokenizeWithComments(loadExamples(b, 100), lexer.Options{})
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		lexer.RemoveBlockComments(tokens)
	}
}
