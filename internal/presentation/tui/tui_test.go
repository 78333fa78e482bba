package tui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
)

func TestCells(t *testing.T) {
	snap := domain.Snapshot{Tape: domain.Interpret("01#"), Position: 1}
	assert.Equal(t, " 0 [1] # ", Cells(snap))
}

func TestTape_Ascii(t *testing.T) {
	snap := domain.Snapshot{Step: 3, State: "Q1", Status: domain.StatusAccepted, Tape: domain.Interpret("01"), Position: 0, Final: true}
	got := Tape(termenv.Ascii, snap)

	assert.Contains(t, got, "   3")
	assert.Contains(t, got, "■")
	assert.Contains(t, got, "Q1")
	assert.Contains(t, got, "accepted")
	assert.Contains(t, got, "[0] 1 ")
	assert.NotContains(t, got, "\x1b[", "the ascii profile emits no escape codes")
	assert.True(t, strings.HasSuffix(got, Cells(snap)), "ascii frames end with the plain cells")
}

func TestTape_ColorsByStatus(t *testing.T) {
	snap := domain.Snapshot{State: "Q0", Status: domain.StatusRejected, Tape: domain.Interpret("1")}
	got := Tape(termenv.TrueColor, snap)
	assert.Contains(t, got, "\x1b[")
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, ColorAccepting, StatusColor(domain.StatusAccepting))
	assert.Equal(t, ColorAccepted, StatusColor(domain.StatusAccepted))
	assert.Equal(t, ColorRejected, StatusColor(domain.StatusRejected))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Greater(t, strings.Count(buf.String(), "\n"), 6)
}

func TestReport(t *testing.T) {
	trace := domain.Trace{
		{Step: 0, State: "Q0", Status: domain.StatusAccepting, Tape: domain.Interpret("1")},
		{Step: 0, State: "Q0", Status: domain.StatusRejected, Tape: domain.Interpret("1"), Final: true},
	}
	verdict := &domain.Verdict{Message: "rejected", Hints: []string{"Zero is even."}, Solution: "Q0 is final"}

	md := Report("parity", trace, verdict)
	assert.Contains(t, md, "# Run: parity")
	assert.Contains(t, md, "**Result:** rejected after 0 steps")
	assert.Contains(t, md, "| 0 | Q0 | accepting | `[1]` |")
	assert.Contains(t, md, "- Zero is even.")
	assert.Contains(t, md, "Q0 is final")

	passed := Report("", trace, &domain.Verdict{Passed: true, Message: "ok"})
	assert.Contains(t, passed, "# Run: machine")
	assert.Contains(t, passed, "✅ ok")
	assert.NotContains(t, passed, "Hints")
}

func TestReport_TruncatesLongTraces(t *testing.T) {
	var trace domain.Trace
	for i := 0; i < 100; i++ {
		trace = append(trace, domain.Snapshot{Step: i, State: "Q0", Tape: domain.Interpret("0")})
	}
	md := Report("long", trace, nil)
	assert.Contains(t, md, "_40 snapshots omitted_")
	assert.Contains(t, md, fmt.Sprintf("| %d | Q0 |", 99))
	assert.NotContains(t, md, "| 50 | Q0 |")
	assert.Contains(t, md, "stopped before halting")
}

func TestPlainRenderer(t *testing.T) {
	out, err := NewPlainRenderer()("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
