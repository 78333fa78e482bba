package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// MaxReportRows caps the trace table. Longer traces keep their head and tail.
const MaxReportRows = 60

// Report builds a markdown summary of a run, ready for NewRenderer.
func Report(name string, trace domain.Trace, verdict *domain.Verdict) string {
	var sb strings.Builder

	if name == "" {
		name = "machine"
	}
	sb.WriteString(fmt.Sprintf("# Run: %s\n\n", name))

	last, ok := trace.Last()
	if !ok {
		sb.WriteString("_The trace is empty._\n")
		return sb.String()
	}

	outcome := last.Status.String()
	if !last.Final {
		outcome = "stopped before halting"
	}
	sb.WriteString(fmt.Sprintf("**Result:** %s after %d steps in state `%s`.\n\n", outcome, last.Step, last.State))
	sb.WriteString(fmt.Sprintf("**Final tape:** `%s`\n\n", domain.Stringify(last.Tape)))

	sb.WriteString("| Step | State | Status | Tape |\n")
	sb.WriteString("|---:|---|---|---|\n")
	rows := trace
	var skipped int
	if len(trace) > MaxReportRows {
		head := MaxReportRows / 2
		tail := MaxReportRows - head
		rows = append(append(domain.Trace{}, trace[:head]...), trace[len(trace)-tail:]...)
		skipped = len(trace) - MaxReportRows
	}
	for i, snap := range rows {
		if skipped > 0 && i == MaxReportRows/2 {
			sb.WriteString(fmt.Sprintf("| … | | | _%d snapshots omitted_ |\n", skipped))
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | `%s` |\n", snap.Step, snap.State, snap.Status, strings.TrimSpace(Cells(snap))))
	}
	sb.WriteString("\n")

	if verdict != nil {
		sb.WriteString("## Assessment\n\n")
		if verdict.Passed {
			sb.WriteString("✅ " + verdict.Message + "\n")
			return sb.String()
		}
		sb.WriteString("❌ " + verdict.Message + "\n")
		if len(verdict.Hints) > 0 {
			sb.WriteString("\n### Hints\n\n")
			for _, h := range verdict.Hints {
				sb.WriteString("- " + h + "\n")
			}
		}
		if verdict.Solution != "" {
			sb.WriteString("\n### Solution\n\n")
			sb.WriteString("```\n" + verdict.Solution + "\n```\n")
		}
	}
	return sb.String()
}
