package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if lvl.String() != strings.ToLower(s) {
			t.Fatalf("%q round-tripped to %q", s, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeModule) {
		t.Fatalf("phase level must not emit module events")
	}
	if !LevelDetail.ShouldEmit(ScopeModule) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Fatalf("detail level emits up to module scope")
	}
	if LevelError.ShouldEmit(ScopeDriver) {
		t.Fatalf("error level streams nothing")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Format: FormatText, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := Begin(tr, ScopeDriver, "parse", 0)
	pass := Begin(tr, ScopePass, "extract", root.ID())
	pass.WithExtra("funcs", "2").WithExtra("blocks", "3").End("")
	Begin(tr, ScopeModule, "file:skipped.ro", root.ID()).End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "\u2190 extract {blocks=3, funcs=2}") {
		t.Fatalf("unexpected end line %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "parse (ok)") {
		t.Fatalf("unexpected root end line %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeModule, "cache-hit", "main.ro", 7)

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["scope"] != "module" || ev["detail"] != "main.ro" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestNopAndContext(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level must give a disabled tracer: %v", err)
	}
	sp := Begin(tr, ScopeDriver, "x", 5)
	if sp.ID() != 5 || sp.End("") != 0 {
		t.Fatalf("inert span should pass the parent through")
	}

	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx = WithTracer(ctx, st)
	if FromContext(ctx) != Tracer(st) {
		t.Fatalf("tracer not propagated")
	}
	root := Begin(st, ScopeDriver, "root", 0)
	ctx = WithSpan(ctx, root)
	if CurrentSpan(ctx) != root.ID() {
		t.Fatalf("span id not propagated")
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("ndjson")
	if err != nil || f != FormatNDJSON {
		t.Fatalf("ndjson: %v %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatalf("expected error")
	}
}
