package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the CLI banner with the version, colored when the
// terminal supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{`            _   _                               _     `, "#818cf8"},
		{`  __ _  ___| |_(_) ___  _ __   __ _ _ __ __ _ _ __ | |__  `, "#a78bfa"},
		{" / _` |/ __| __| |/ _ \\| '_ \\ / _` | '__/ _` | '_ \\| '_ \\ ", "#c084fc"},
		{"| (_| | (__| |_| | (_) | | | | (_| | | | (_| | |_) | | | |", "#e879f9"},
		{` \__,_|\___|\__|_|\___/|_| |_|\__, |_|  \__,_| .__/|_| |_|`, "#f472b6"},
		{`                              |___/          |_|          `, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  "+version).Faint())
	fmt.Fprintln(w)
}
