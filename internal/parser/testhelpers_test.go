package parser

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"ro/internal/diag"
	"ro/internal/hir"
	"ro/internal/token"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func toks(src string) token.List {
	return token.FromTexts(strings.Fields(src)...)
}

func callStrings(calls []hir.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

func expectCalls(t *testing.T, calls []hir.Call, want ...string) {
	t.Helper()
	got := callStrings(calls)
	if !slices.Equal(got, want) {
		t.Fatalf("calls mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func withBag() (Options, *diag.Bag) {
	bag := diag.NewBag(0)
	return Options{Reporter: diag.BagReporter{Bag: bag}}, bag
}
