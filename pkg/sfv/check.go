package sfv

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/tqbf/sfvcheck/pkg/crc"
)

const bufSize = 64 << 10

// Verify matches the list against dir, recomputes the checksum of every
// found file and reports each entry as missing (0), bad (Found) or
// ok (Found|CRCOK).
func (l *List) Verify(
	dir string,
	r Reporter,
	opts ...Option,
) error {
	return l.run(dir, r, buildOptions(opts), verifyEntry)
}

// Update matches the list against dir and replaces the checksum of every
// found entry with the file's actual checksum. Found entries are reported
// as Found|CRCOK, the rest as 0.
func (l *List) Update(
	dir string,
	r Reporter,
	opts ...Option,
) error {
	o := buildOptions(opts)
	if o.readErrors == ReadErrorBad {
		o.readErrors = ReadErrorMissing
	}
	return l.run(dir, r, o, updateEntry)
}

type applyFunc func(e *Entry, sum uint32)

func verifyEntry(e *Entry, sum uint32) {
	if sum == e.CRC {
		e.Status |= CRCOK
	} else {
		e.Status &^= CRCOK
	}
}

func updateEntry(e *Entry, sum uint32) {
	e.CRC = sum
	e.Status |= CRCOK
}

func (l *List) run(
	dir string,
	r Reporter,
	o options,
	apply applyFunc,
) error {
	if r == nil {
		r = discard{}
	}
	if err := l.Match(dir); err != nil {
		return err
	}

	buf := make([]byte, bufSize)
	for _, e := range l.entries {
		if e.found() {
			path := filepath.Join(dir, e.ResolvedName)
			sum, n, err := crc.FileBuffer(path, buf)
			if err != nil {
				if err := o.handle(e, err); err != nil {
					return err
				}
			} else {
				e.Size = n
				apply(e, sum)
			}
		}
		r.Report(e.Name, e.Status)
	}
	return nil
}

func (o options) handle(e *Entry, err error) error {
	switch o.readErrors {
	case ReadErrorMissing:
		slog.Warn("checksum failed, reporting missing",
			"name", e.Name, "err", err,
		)
		e.unresolve()
	case ReadErrorBad:
		slog.Warn("checksum failed, reporting bad",
			"name", e.Name, "err", err,
		)
	default:
		return fmt.Errorf("%w: checksum %s: %w", ErrIO, e.Name, err)
	}
	return nil
}
