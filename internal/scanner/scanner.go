// Package scanner handles the low-level reading of FITS input: splitting
// the stream into 2880-byte blocks, locating the END card that terminates a
// header, and transparently decompressing gzipped files.
package scanner

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Sizes fixed by the FITS standard.
const (
	// BlockSize is the length of a header or data block.
	BlockSize = 2880

	// CardSize is the length of a single keyword card.
	CardSize = 80
)

var (
	// ErrMissingEND is returned when no END card is found within the
	// configured block limit.
	ErrMissingEND = errors.New("no END card found in header")

	// ErrTruncated is returned when the input ends in the middle of a
	// block.
	ErrTruncated = errors.New("input ends mid-block")
)

// gzipMagic is the two-byte magic number that begins every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// Scanner reads FITS blocks from an input stream.
type Scanner struct {
	r         io.Reader
	maxBlocks int
}

// New returns a Scanner over the given reader. The first two bytes of the
// input are peeked at and, if they carry the gzip magic number, the rest of
// the stream is decompressed on the fly.
//
// maxBlocks limits how many blocks a single header may span before
// ErrMissingEND is returned. A value less than or equal to zero means no
// limit.
func New(r io.Reader, maxBlocks int) (*Scanner, error) {
	br := bufio.NewReaderSize(r, BlockSize)

	magic, err := br.Peek(2)
	if err == nil && bytes.Equal(magic, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("unable to open gzip stream: %w", err)
		}
		return &Scanner{r: zr, maxBlocks: maxBlocks}, nil
	}

	return &Scanner{r: br, maxBlocks: maxBlocks}, nil
}

// ReadHeader reads blocks until it finds the END card and returns the header
// bytes up to, but not including, END. The underlying reader is left
// positioned at the block boundary following the header, where the data unit
// begins.
func (s *Scanner) ReadHeader() ([]byte, error) {
	buf := make([]byte, 0, BlockSize)
	block := make([]byte, BlockSize)

	for n := 0; s.maxBlocks <= 0 || n < s.maxBlocks; n++ {
		if _, err := io.ReadFull(s.r, block); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrTruncated, err)
		}

		if pos, found := findEND(block); found {
			buf = append(buf, block[:pos]...)
			return buf, nil
		}

		buf = append(buf, block...)
	}

	return nil, ErrMissingEND
}

// SkipData discards n bytes, the size of a data unit, so the next call to
// ReadHeader starts at the following header.
func (s *Scanner) SkipData(n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, s.r, n); err != nil {
		return fmt.Errorf("unable to skip %d data bytes: %w", n, err)
	}
	return nil
}

// findEND looks for a card-aligned END card within a block. Scanning by card
// keeps an END that appears inside a string value from terminating the
// header early.
func findEND(block []byte) (int, bool) {
	for off := 0; off+CardSize <= len(block); off += CardSize {
		card := block[off : off+CardSize]
		if string(bytes.TrimRight(card, " ")) == "END" {
			return off, true
		}
	}
	return 0, false
}
