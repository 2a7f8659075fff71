package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tqbf/sfvcheck/pkg/sfv"
)

type runJSON struct {
	Manifest string      `json:"manifest"`
	Mode     string      `json:"mode"`
	Entries  []entryJSON `json:"entries"`
	Summary  summaryJSON `json:"summary"`
}

type entryJSON struct {
	Name   string `json:"name"`
	File   string `json:"file,omitempty"`
	CRC    string `json:"crc"`
	Status string `json:"status"`
	Size   int64  `json:"size"`
}

type summaryJSON struct {
	Total   int    `json:"total"`
	Missing int    `json:"missing"`
	Bad     int    `json:"bad"`
	Bytes   uint64 `json:"bytes"`
}

func printJSON(
	w io.Writer,
	manifest string,
	create bool,
	list *sfv.List,
	t *tally,
) error {
	out := runJSON{
		Manifest: manifest,
		Mode:     "verify",
		Entries:  make([]entryJSON, 0, list.Len()),
		Summary: summaryJSON{
			Total:   t.total,
			Missing: t.missing,
			Bad:     t.bad,
			Bytes:   checkedBytes(list),
		},
	}
	if create {
		out.Mode = "create"
	}

	for _, e := range list.Entries() {
		out.Entries = append(out.Entries, entryJSON{
			Name:   e.Name,
			File:   e.ResolvedName,
			CRC:    fmt.Sprintf("%08x", e.CRC),
			Status: e.Status.String(),
			Size:   e.Size,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
