// Package console prints operation outcomes for the operator. Domain errors
// end here; they are printed and never fail the process.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/internal/validate"
)

type Printer struct {
	out io.Writer
}

func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Warn prints a non-fatal problem of an otherwise successful operation.
func (p *Printer) Warn(format string, a ...any) {
	fmt.Fprintf(p.out, "Warning: "+format+"\n", a...)
}

// Table prints a header line followed by one pipe-delimited line per row.
func (p *Printer) Table(header []string, rows [][]string) {
	fmt.Fprintln(p.out, strings.Join(header, " | "))
	for _, row := range rows {
		fmt.Fprintln(p.out, strings.Join(row, " | "))
	}
}

// Report prints err by kind: validation messages as written, not-found as an
// outcome, duplicates with their sentinel's hint and anything else as an
// error line.
func (p *Printer) Report(err error) {
	if err == nil {
		return
	}

	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(p.out, verr.Message)
	case errors.Is(err, repo.ErrNotFound):
		fmt.Fprintln(p.out, sentence(err.Error()))
	case errors.Is(err, repo.ErrDuplicateKey):
		if hint := repo.Hint(err); hint != "" {
			fmt.Fprintf(p.out, "Error: %s %s\n", sentence(err.Error()), hint)
			return
		}
		fmt.Fprintf(p.out, "Error: %s\n", sentence(err.Error()))
	default:
		fmt.Fprintf(p.out, "Error: %s\n", err)
	}
}

// sentence capitalizes the first letter and ends s with a period.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
