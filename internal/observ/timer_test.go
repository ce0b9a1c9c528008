package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("tokenize")
	tm.End(idx, "12 tokens")
	tm.Add("assemble", 2*time.Millisecond, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(rep.Phases))
	}
	if rep.Phases[0].Name != "tokenize" || rep.Phases[0].Note != "12 tokens" {
		t.Fatalf("unexpected first phase %+v", rep.Phases[0])
	}
	if rep.Phases[1].DurationMS != 2 {
		t.Fatalf("assemble = %v ms, want 2", rep.Phases[1].DurationMS)
	}
	if rep.TotalMS < 2 {
		t.Fatalf("total %v ms is below the recorded phase", rep.TotalMS)
	}

	sum := tm.Summary()
	if !strings.HasPrefix(sum, "timings:\n") || !strings.Contains(sum, "// 12 tokens") || !strings.Contains(sum, "total") {
		t.Fatalf("unexpected summary:\n%s", sum)
	}
}

func TestTimerEmpty(t *testing.T) {
	if rep := NewTimer().Report(); rep.Phases != nil || rep.TotalMS != 0 {
		t.Fatalf("empty timer should give an empty report, got %+v", rep)
	}
}
