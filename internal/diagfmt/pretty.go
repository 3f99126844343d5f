// Package diagfmt renders a diagnostic bag for a terminal or for machine
// consumption.
package diagfmt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"

	"zenc/internal/diag"
)

// Options controls Pretty's rendering.
type Options struct {
	Color bool
	File  string
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	pathColor    = color.New(color.FgWhite, color.Bold)
	codeColor    = color.New(color.FgMagenta)
	noteColor    = color.New(color.FgBlue)
	hintColor    = color.New(color.FgGreen)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty writes one human-readable line per diagnostic (plus note/hint
// lines), in bag order — callers should Sort the bag first for
// deterministic output.
func Pretty(w io.Writer, items []*diag.Diagnostic, opts Options) {
	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !opts.Color

	var maxLine uint32
	for _, d := range items {
		if d.Primary.Line > maxLine {
			maxLine = d.Primary.Line
		}
	}
	gutter := gutterWidth(maxLine)

	for _, d := range items {
		lineStr := strconv.FormatUint(uint64(d.Primary.Line), 10)
		fmt.Fprintf(w, "%s:%s%d:%d: %s %s: %s\n",
			pathColor.Sprint(opts.File),
			pad(gutter-len(lineStr)),
			d.Primary.Line, d.Primary.Col,
			severityColor(d.Severity).Sprint(d.Severity.String()),
			codeColor.Sprint(d.Code.String()),
			d.Message,
		)
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %d:%d: %s\n", noteColor.Sprint("note at"), note.Pos.Line, note.Pos.Col, note.Msg)
		}
		for _, hint := range d.Hints {
			fmt.Fprintf(w, "  %s %s\n", hintColor.Sprint("hint:"), hint)
		}
	}
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// gutterWidth returns the display width of the line-number gutter needed
// for the largest line number in items, using East-Asian-aware rune
// widths so a gutter built from wide digits (rare, but the analyzer makes
// no assumption about the emitting front end's locale) still aligns.
func gutterWidth(maxLine uint32) int {
	s := strconv.FormatUint(uint64(maxLine), 10)
	total := 0
	for _, r := range s {
		if width.LookupRune(r).Kind() == width.EastAsianWide {
			total += 2
		} else {
			total += runewidth.RuneWidth(r)
		}
	}
	return total
}
