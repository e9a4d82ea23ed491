package main

import (
	"fmt"
	"io"
	"os"

	"github.com/labstack/gommon/color"
)

// stdPrinter writes program output to stdout, diagnostics written to
// stderr are colored when enabled
type stdPrinter struct {
	color *color.Color
}

func newStdPrinter(colored bool) stdPrinter {
	c := color.New()
	if !colored {
		c.Disable()
	}
	return stdPrinter{color: c}
}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	if w == os.Stderr {
		return fmt.Fprint(w, s.color.Red(fmt.Sprintf(format, a...)))
	}
	return fmt.Fprintf(w, format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	if w == os.Stderr {
		return fmt.Fprintln(w, s.color.Red(fmt.Sprint(a...)))
	}
	return fmt.Fprintln(w, a...)
}
