package sfv

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const maxLine = 64 << 10

var lineRe = regexp.MustCompile(
	`^([^;#].*?)[[:space:]]+(?:0x)?([0-9A-Fa-f]{1,8})[[:space:]]*$`,
)

// Open parses the manifest at path.
func Open(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse reads manifest lines from r. Comments, blank lines and lines that
// do not hold a name followed by a hex checksum are skipped.
func Parse(r io.Reader) (*List, error) {
	l := New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		e, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		l.entries = append(l.entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(
			"%w: line %d: %w", ErrParse, lineNo+1, err,
		)
	}
	slog.Debug("parsed manifest",
		"lines", lineNo,
		"entries", len(l.entries),
	)
	return l, nil
}

func parseLine(line string) (*Entry, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return nil, false
	}
	crc, err := strconv.ParseUint(m[2], 16, 32)
	if err != nil {
		slog.Debug("skipping manifest line",
			"line", line, "err", err,
		)
		return nil, false
	}
	return &Entry{Name: m[1], CRC: uint32(crc)}, true
}
