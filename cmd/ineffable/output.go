package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
	"golang.org/x/term"

	"github.com/dshills/ineffable/internal/report"
)

var (
	colorError  = mustHex("#e5484d")
	colorWarn   = mustHex("#f5a524")
	colorOK     = mustHex("#46a758")
	colorAccent = mustHex("#3e63dd")
	colorDim    = mustHex("#8b8d98")
)

// mustHex parses a palette constant.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// printer writes report output, colored when the destination is a
// terminal and NO_COLOR is unset.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w}
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		p.color = term.IsTerminal(int(f.Fd()))
	}
	return p
}

func (p *printer) paint(c colorful.Color, s string) string {
	if !p.color {
		return s
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
}

func displayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// pad right-pads s with spaces to width terminal cells.
func pad(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func severityColor(s report.Severity) colorful.Color {
	if s == report.Error {
		return colorError
	}
	return colorWarn
}

// printReport writes one line per problem followed by a summary.
func (p *printer) printReport(rep *report.Report) {
	width := 0
	for _, prob := range rep.Problems {
		width = max(width, displayWidth(prob.Severity.String()))
	}
	for _, prob := range rep.Problems {
		sev := p.paint(severityColor(prob.Severity), pad(prob.Severity.String(), width))
		code := p.paint(colorDim, "["+string(prob.Code)+"]")
		if loc := prob.Location(); loc != "" {
			fmt.Fprintf(p.w, "%s %s %s: %s\n", sev, code, loc, prob.Message)
		} else {
			fmt.Fprintf(p.w, "%s %s %s\n", sev, code, prob.Message)
		}
	}

	errs, warns := len(rep.Errors()), len(rep.Warnings())
	switch {
	case errs > 0:
		fmt.Fprintln(p.w, p.paint(colorError, fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)))
	case warns > 0:
		fmt.Fprintln(p.w, p.paint(colorWarn, fmt.Sprintf("ok with %d warning(s)", warns)))
	default:
		fmt.Fprintln(p.w, p.paint(colorOK, "ok"))
	}
}
