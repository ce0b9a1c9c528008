package ui

import (
	"strings"
	"testing"

	"ro/internal/pipeline"
)

func TestProgressModelApplyEvent(t *testing.T) {
	events := make(chan pipeline.Event)
	m := NewProgressModel("parsing", []string{"a.ro", "b.ro"}, events).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.ro", Stage: pipeline.StageExtract, Status: pipeline.StatusWorking})
	if m.items[0].status != "extracting" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	if got := m.percent(); got != 0.3 {
		t.Fatalf("percent = %v, want 0.3", got)
	}

	m.applyEvent(pipeline.Event{File: "a.ro", Stage: pipeline.StageAssemble, Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{File: "b.ro", Stage: pipeline.StageCache, Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{File: "unknown.ro", Stage: pipeline.StageLoad, Status: pipeline.StatusError})
	if m.items[1].status != "cached" {
		t.Fatalf("status = %q, want cached", m.items[1].status)
	}
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}

	view := m.View()
	if !strings.Contains(view, "a.ro") || !strings.Contains(view, "cached") {
		t.Fatalf("view misses file lines:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a/very/long/path/main.ro", 10); got != "a/very/..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("ファイル.ro", 6); got != "フ..." {
		t.Fatalf("wide runes: got %q", got)
	}
}
