// Package crc computes the IEEE 802.3 CRC-32 used by .sfv manifests,
// the same checksum zip and Ethernet use.
package crc

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// Init is the accumulator seed for a fresh checksum.
const Init uint32 = 0xFFFFFFFF

const chunkSize = 64 << 10

// ErrRead marks a failure while reading an already opened file.
var ErrRead = errors.New("crc: read failed")

var table = crc32.IEEETable

// Update continues a raw CRC-32 accumulator over p. The accumulator is not
// complemented on the way in or out, so calls compose across chunks:
// Update(Update(s, a), b) == Update(s, a+b).
func Update(seed uint32, p []byte) uint32 {
	return ^crc32.Update(^seed, table, p)
}

// Sum returns the finished CRC-32 of p.
func Sum(p []byte) uint32 {
	return Update(Init, p) ^ Init
}

// File returns the CRC-32 of the file at path and the number of bytes read.
func File(path string) (uint32, int64, error) {
	return FileBuffer(path, nil)
}

// FileBuffer is File reading through buf, so one buffer can serve many
// files. A nil buf gets a fresh chunk-sized one.
func FileBuffer(path string, buf []byte) (uint32, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	return Reader(f, buf)
}

// Reader checksums r to EOF using buf as scratch space.
func Reader(r io.Reader, buf []byte) (uint32, int64, error) {
	if len(buf) == 0 {
		buf = make([]byte, chunkSize)
	}
	sum := Init
	var n int64
	for {
		m, err := r.Read(buf)
		if m > 0 {
			sum = Update(sum, buf[:m])
			n += int64(m)
		}
		if err == io.EOF {
			return sum ^ Init, n, nil
		}
		if err != nil {
			return 0, n, fmt.Errorf("%w: %w", ErrRead, err)
		}
	}
}
