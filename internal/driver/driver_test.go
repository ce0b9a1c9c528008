package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"ro/internal/diag"
	"ro/internal/hir"
	"ro/internal/pipeline"
	"ro/internal/source"
)

const sampleSource = `/* sample */
result add(one: float, two: float): float {
	fn { var s = one + two ret s }
}
fn twice(a: float) => add { ret a }
fn main { var x = add(1, 2) print(x) }
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func dump(t *testing.T, prog *hir.Program) string {
	t.Helper()
	var sb strings.Builder
	if err := hir.Dump(&sb, prog); err != nil {
		t.Fatalf("dump: %v", err)
	}
	return sb.String()
}

func TestTokenizeRawAndFiltered(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.ro", "fn /* hidden */ main {}")

	res, err := Tokenize(path, 0, false)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if got := res.Tokens.Texts(); !slices.Equal(got, []string{"fn", "main", "{", "}"}) {
		t.Fatalf("filtered tokens = %q", got)
	}

	res, err = Tokenize(path, 0, true)
	if err != nil {
		t.Fatalf("Tokenize raw: %v", err)
	}
	if len(res.Tokens) != 7 {
		t.Fatalf("raw tokens = %q", res.Tokens.Texts())
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := Tokenize(filepath.Join(t.TempDir(), "nope.ro"), 0, false); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.ro", sampleSource)
	res, err := Parse(context.Background(), path, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Bag.HasErrors() || res.Program == nil {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	r, ok := res.Program.Result("add")
	if !ok || len(r.Funcs) != 2 {
		t.Fatalf("expected add with 2 funcs, got %+v", res.Program.Results)
	}
	if len(res.Program.Funcs) != 1 {
		t.Fatalf("expected main only at top level")
	}
	if len(res.Timing.Phases) != 3 {
		t.Fatalf("expected tokenize/extract/assemble timings, got %+v", res.Timing.Phases)
	}
}

func TestParseFileSyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.ro", "fn main {\n  ret 0\n")
	res, err := Parse(context.Background(), path, ParseOptions{})
	if err != nil {
		t.Fatalf("syntax errors must be diagnostics, got %v", err)
	}
	if res.Program != nil {
		t.Fatalf("no program expected")
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynUnterminatedBlock {
		t.Fatalf("unexpected diagnostics %v", items)
	}
	start, _ := res.FileSet.Resolve(items[0].Primary)
	if start.Line != 1 || start.Col != 9 {
		t.Fatalf("diagnostic at %d:%d, want 1:9", start.Line, start.Col)
	}
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Parse(ctx, "unused.ro", ParseOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseWithCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	src := sampleSource + "fn warn { x = a + b + c }\n"
	path := writeFile(t, dir, "main.ro", src)
	opts := ParseOptions{Cache: cache}

	first, err := Parse(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	if first.Cached || first.Program == nil {
		t.Fatalf("first parse should not hit the cache")
	}

	second, err := Parse(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second parse should hit the cache")
	}
	if dump(t, first.Program) != dump(t, second.Program) {
		t.Fatalf("cached program differs:\n%s\nvs\n%s", dump(t, first.Program), dump(t, second.Program))
	}
	if second.Bag.Len() != 1 || second.Bag.Items()[0].Code != diag.SynUnsupportedExpression {
		t.Fatalf("cached warnings not replayed: %v", second.Bag.Items())
	}
	if second.Bag.Items()[0].Primary.File != second.File.ID {
		t.Fatalf("replayed warning must point at the current file")
	}

	// другое содержимое — другой ключ
	writeFile(t, dir, "main.ro", src+"fn extra {}\n")
	third, err := Parse(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("third parse: %v", err)
	}
	if third.Cached {
		t.Fatalf("changed content must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	fourth, err := Parse(context.Background(), path, opts)
	if err != nil || fourth.Cached {
		t.Fatalf("cache should be empty after DropAll: cached=%v err=%v", fourth.Cached, err)
	}
}

func TestMarshalProgramRoundTrip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.ro", sampleSource+"fn empty() {}\n")
	res, err := Parse(context.Background(), path, ParseOptions{})
	if err != nil || res.Program == nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := MarshalProgram(res.Program)
	if err != nil {
		t.Fatalf("MarshalProgram: %v", err)
	}
	back, err := UnmarshalProgram(data, res.File.ID)
	if err != nil {
		t.Fatalf("UnmarshalProgram: %v", err)
	}
	if dump(t, back) != dump(t, res.Program) {
		t.Fatalf("round trip mismatch:\n%s\nvs\n%s", dump(t, back), dump(t, res.Program))
	}
	empty, _ := back.Func("empty")
	if empty == nil || !empty.Sig.HasParams() {
		t.Fatalf("empty parameter list must survive the round trip")
	}
	main, _ := back.Func("main")
	if main == nil || main.Sig.HasParams() {
		t.Fatalf("absent parameter list must survive the round trip")
	}
	if main.Calls[0].Span != res.Program.Funcs[0].Calls[0].Span {
		t.Fatalf("spans must survive the round trip")
	}
}

func TestPayloadToCallRejectsBadOperands(t *testing.T) {
	bad := []CallPayload{
		{Kind: uint8(hir.CallMove), Operands: []string{"x"}},
		{Kind: uint8(hir.CallOperate), Operands: []string{"x", "a", "b"}, Op: 200},
		{Kind: uint8(hir.CallInvoke)},
		{Kind: 77},
	}
	for _, cp := range bad {
		if _, err := payloadToCall(cp, source.FileID(0)); err == nil {
			t.Fatalf("expected error for %+v", cp)
		}
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.ro", "fn b { ret 1 }")
	writeFile(t, dir, "a.ro", sampleSource)
	writeFile(t, dir, "sub/c.ro", "fn c => nowhere { }")
	writeFile(t, dir, "notes.txt", "fn ignored {}")

	sink := &pipeline.RecordingSink{}
	fs, results, err := ParseDir(context.Background(), dir, ParseOptions{Progress: sink}, 4)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if fs.Len() != 3 {
		t.Fatalf("expected 3 loaded files, got %d", fs.Len())
	}
	var names []string
	for _, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		names = append(names, filepath.ToSlash(rel))
	}
	if !slices.Equal(names, []string{"a.ro", "b.ro", "sub/c.ro"}) {
		t.Fatalf("results order = %v", names)
	}
	if results[0].Program == nil || results[1].Program == nil {
		t.Fatalf("a.ro and b.ro must parse")
	}
	if results[2].Program != nil || !results[2].Bag.HasErrors() {
		t.Fatalf("c.ro must fail with an unresolved result")
	}
	if got := results[2].Bag.Items()[0].Code; got != diag.SynUnresolvedResult {
		t.Fatalf("c.ro code = %s", got.ID())
	}

	var done, failed int
	for _, ev := range sink.Events() {
		switch ev.Status {
		case pipeline.StatusDone:
			done++
		case pipeline.StatusError:
			failed++
		}
	}
	if done != 2 || failed != 1 {
		t.Fatalf("progress: done=%d failed=%d", done, failed)
	}
}

func TestParseDirEmptyAndCancelled(t *testing.T) {
	dir := t.TempDir()
	_, results, err := ParseDir(context.Background(), dir, ParseOptions{}, 0)
	if err != nil || len(results) != 0 {
		t.Fatalf("empty dir: %v %v", results, err)
	}

	writeFile(t, dir, "a.ro", "fn a {}")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ParseDir(ctx, dir, ParseOptions{}, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
