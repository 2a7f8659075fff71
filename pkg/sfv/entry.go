// Package sfv reads, verifies and writes .sfv checksum manifests.
package sfv

import "errors"

var (
	// ErrIO wraps directory listing, checksum and write failures.
	ErrIO = errors.New("sfv: i/o failure")
	// ErrParse wraps failures to open or read a manifest. Malformed lines
	// are skipped, not reported.
	ErrParse = errors.New("sfv: manifest unreadable")
)

// Status is the bit set reported for each entry.
type Status int

const (
	Found Status = 1 << iota
	CRCOK
)

func (s Status) String() string {
	switch s {
	case 0:
		return "missing"
	case Found:
		return "bad"
	case Found | CRCOK:
		return "ok"
	default:
		return "invalid"
	}
}

// Entry is one manifest line. ResolvedName is the on-disk name found by
// Match and is empty while the file has not been found.
type Entry struct {
	Name         string
	ResolvedName string
	CRC          uint32
	Status       Status
	Size         int64
}

func (e *Entry) found() bool {
	return e.Status&Found != 0
}

func (e *Entry) unresolve() {
	e.ResolvedName = ""
	e.Status = 0
	e.Size = 0
}

// List is an ordered set of entries owned by whoever created it.
type List struct {
	entries []*Entry
}

// New returns an empty list for create mode.
func New() *List {
	return &List{}
}

// Add appends unmatched entries with a zero checksum, one per name.
func (l *List) Add(names ...string) {
	for _, n := range names {
		l.entries = append(l.entries, &Entry{Name: n})
	}
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// Entries returns the entries in list order. The slice is owned by the
// list and must not be kept past Close.
func (l *List) Entries() []*Entry {
	return l.entries
}

// Close drops every entry. The list is empty afterwards.
func (l *List) Close() {
	clear(l.entries)
	l.entries = nil
}
