package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type printer struct {
	w     io.Writer
	color bool
}

func (p *printer) pass(format string, args ...any) {
	p.mark(color.GreenString, "✓", format, args...)
}

func (p *printer) fail(format string, args ...any) {
	p.mark(color.RedString, "✗", format, args...)
}

func (p *printer) mark(cf func(string, ...any) string, mark, format string, args ...any) {
	if p.color {
		mark = cf(mark)
	}
	fmt.Fprintf(p.w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}
