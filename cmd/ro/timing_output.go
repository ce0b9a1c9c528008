package main

import (
	"fmt"
	"io"

	"ro/internal/observ"
)

func printTimings(out io.Writer, label string, report observ.Report, cached bool) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	suffix := ""
	if cached {
		suffix = " (cached)"
	}
	fmt.Fprintf(out, "%s: %.1f ms%s\n", label, report.TotalMS, suffix)
	for _, phase := range report.Phases {
		if phase.Note != "" {
			fmt.Fprintf(out, "  %-9s %.2f ms  %s\n", phase.Name, phase.DurationMS, phase.Note)
			continue
		}
		fmt.Fprintf(out, "  %-9s %.2f ms\n", phase.Name, phase.DurationMS)
	}
}
