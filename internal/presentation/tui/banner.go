package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _____          _             ", "#ffb74d"},
		{"|_   _|   _ _ _(_)_ __   __ _ ", "#ffa726"},
		{"  | || | | | '__| | '_ \\ / _` |", "#9ccc65"},
		{"  | || |_| | |  | | | | | (_| |", "#66bb6a"},
		{"  |_| \\__,_|_|  |_|_| |_|\\__, |", "#ef5350"},
		{"                         |___/ ", "#e53935"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  "+version).Faint())
	}
	fmt.Fprintln(w)
}
