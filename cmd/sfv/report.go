package main

import (
	"fmt"
	"io"

	"github.com/tqbf/sfvcheck/pkg/sfv"
)

type tally struct {
	total   int
	missing int
	bad     int
}

func (t *tally) add(name string, status sfv.Status) {
	t.total++
	switch status {
	case 0:
		t.missing++
	case sfv.Found:
		t.bad++
	case sfv.Found | sfv.CRCOK:
	default:
		panic(fmt.Sprintf("unexpected status %d for %s", status, name))
	}
}

// exitCode sets bit 0 for missing files and bit 1 for bad checksums.
func (t *tally) exitCode() int {
	code := 0
	if t.missing > 0 {
		code |= 1
	}
	if t.bad > 0 {
		code |= 2
	}
	return code
}

type quietReporter struct {
	*tally
}

func (r quietReporter) Report(name string, status sfv.Status) {
	r.add(name, status)
}

type verifyReporter struct {
	*tally
	w io.Writer
}

func (r verifyReporter) Report(name string, status sfv.Status) {
	r.add(name, status)
	var s string
	switch status {
	case 0:
		s = "missing."
	case sfv.Found:
		s = "bad crc."
	default:
		s = "crc ok."
	}
	fmt.Fprintf(r.w, "%s %s\n", name, s)
}

type createReporter struct {
	*tally
	w io.Writer
}

func (r createReporter) Report(name string, status sfv.Status) {
	switch status {
	case 0:
		r.add(name, status)
		fmt.Fprintf(r.w, "%s missing.\n", name)
	case sfv.Found | sfv.CRCOK:
		r.add(name, status)
		fmt.Fprintf(r.w, "%s added.\n", name)
	default:
		panic(fmt.Sprintf("unexpected create status %d for %s", status, name))
	}
}

func newReporter(
	w io.Writer,
	t *tally,
	create, quiet bool,
) sfv.Reporter {
	switch {
	case quiet:
		return quietReporter{t}
	case create:
		return createReporter{t, w}
	default:
		return verifyReporter{t, w}
	}
}
