package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/turing/pkg/domain"
)

// Status colors.
const (
	ColorAccepting = "#ff9800"
	ColorAccepted  = "#4caf50"
	ColorRejected  = "#f44336"
)

// StatusColor maps a status onto its display color.
func StatusColor(s domain.Status) string {
	switch s {
	case domain.StatusAccepted:
		return ColorAccepted
	case domain.StatusRejected:
		return ColorRejected
	default:
		return ColorAccepting
	}
}

// Cells renders the tape with the cell under the cursor in brackets.
func Cells(snap domain.Snapshot) string {
	var sb strings.Builder
	for i, sym := range snap.Tape {
		if i == snap.Position {
			sb.WriteString("[" + sym.String() + "]")
			continue
		}
		sb.WriteString(" " + sym.String() + " ")
	}
	return sb.String()
}

// Tape renders one frame: step, state and status colored by status, then the tape.
func Tape(p termenv.Profile, snap domain.Snapshot) string {
	color := p.Color(StatusColor(snap.Status))

	state := emphasize(p, p.String(fmt.Sprintf("%-6s", snap.State.Name())).Foreground(color))
	status := p.String(fmt.Sprintf("%-9s", snap.Status.String())).Foreground(color)

	cells := Cells(snap)
	if p != termenv.Ascii {
		var sb strings.Builder
		for i, sym := range snap.Tape {
			if i == snap.Position {
				sb.WriteString(emphasize(p, p.String("["+sym.String()+"]").Foreground(color)).String())
				continue
			}
			sb.WriteString(" " + sym.String() + " ")
		}
		cells = sb.String()
	}

	marker := " "
	if snap.Final {
		marker = "■"
	}
	return fmt.Sprintf("%4d %s %s %s %s", snap.Step, marker, state, status, cells)
}

// emphasize bolds s unless the profile is plain text.
func emphasize(p termenv.Profile, s termenv.Style) termenv.Style {
	if p == termenv.Ascii {
		return s
	}
	return s.Bold()
}
