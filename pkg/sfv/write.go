package sfv

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteTo writes the list in manifest form. Entries that were never found
// become "; <name> failed." comment lines.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, e := range l.entries {
		var n int
		var err error
		if e.ResolvedName != "" {
			n, err = fmt.Fprintf(bw, "%s %08x\n", e.Name, e.CRC)
		} else {
			n, err = fmt.Fprintf(bw, "; %s failed.\n", e.Name)
		}
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// Save replaces the file at path with the list's manifest.
func (l *List) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, path, err)
	}
	if _, err := l.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, path, err)
	}
	return nil
}
