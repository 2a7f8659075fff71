package sfv

import (
	"fmt"
	"os"
	"strings"
)

// Match resolves entries against the immediate contents of dir. Each
// directory name binds to the first entry, in list order, that is still
// unmatched and whose name is equal ignoring case. The on-disk spelling
// is kept in ResolvedName. Results of an earlier Match are cleared first;
// checksums are kept.
func (l *List) Match(dir string) error {
	des, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: list %s: %w", ErrIO, dir, err)
	}
	for _, e := range l.entries {
		e.unresolve()
	}
	for _, de := range des {
		if e := l.lookup(de.Name()); e != nil {
			e.ResolvedName = de.Name()
			e.Status |= Found
		}
	}
	return nil
}

func (l *List) lookup(name string) *Entry {
	for _, e := range l.entries {
		if !e.found() && strings.EqualFold(name, e.Name) {
			return e
		}
	}
	return nil
}
