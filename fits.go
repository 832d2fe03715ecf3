package fits

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/zostay/go-fits/header"
	"github.com/zostay/go-fits/internal/scanner"
)

// Constants related to ReadHeader() options.
const (
	// DefaultMaxBlocks is the default maximum number of 2880-byte blocks a
	// single header may span before reading fails with ErrMissingEND.
	// Headers in the wild run to a handful of blocks, so this is generous.
	DefaultMaxBlocks = 10_000
)

// Errors that occur during reading.
var (
	// ErrMissingEND is returned by ReadHeader when no END card is found
	// within the configured WithMaxBlocks option (or the default,
	// DefaultMaxBlocks).
	ErrMissingEND = scanner.ErrMissingEND

	// ErrTruncated is returned by ReadHeader when the input ends in the
	// middle of a block, which means the file is not a whole FITS file.
	ErrTruncated = scanner.ErrTruncated
)

type reader struct {
	maxBlocks  int
	commentary bool
	hdu        int
}

func (rd *reader) clone() *reader {
	r := *rd
	return &r
}

var defaultReader = &reader{
	maxBlocks: DefaultMaxBlocks,
}

// ReadOption refers to options that may be passed to the read functions to
// modify how the reader works.
type ReadOption func(rd *reader)

// WithMaxBlocks is a ReadOption that sets the maximum number of blocks to
// scan before giving up on finding the END card and failing with
// ErrMissingEND. This setting prevents bad input from being read to the end
// of a very large file. Setting this to a value less than or equal to 0 will
// result in there being no maximum. The default value is DefaultMaxBlocks.
func WithMaxBlocks(n int) ReadOption {
	return func(rd *reader) { rd.maxBlocks = n }
}

// WithCommentary is a ReadOption that retains COMMENT, HISTORY, and
// blank-keyword cards in the returned header. By default these cards are
// skipped, along with anything else that does not parse as a keyword card.
func WithCommentary() ReadOption {
	return func(rd *reader) { rd.commentary = true }
}

// WithHDU is a ReadOption that selects which header to read. The primary
// header is 0, which is the default, and negative values are treated as 0.
// For larger values the reader skips over the data unit of each preceding
// HDU, which requires those headers to carry the BITPIX and NAXIS keywords
// that size their data.
func WithHDU(n int) ReadOption {
	if n < 0 {
		n = 0
	}
	return func(rd *reader) { rd.hdu = n }
}

// ReadHeaderFrom reads a FITS header from the given reader. Gzipped input is
// detected by its magic number and decompressed transparently.
func ReadHeaderFrom(r io.Reader, opts ...ReadOption) (*header.Header, error) {
	rd := defaultReader.clone()
	for _, opt := range opts {
		opt(rd)
	}

	s, err := scanner.New(r, rd.maxBlocks)
	if err != nil {
		return nil, err
	}

	for i := 0; ; i++ {
		m, err := s.ReadHeader()
		if err != nil {
			return nil, err
		}

		var h *header.Header
		if rd.commentary {
			h, err = header.ParseCommentary(m)
		} else {
			h, err = header.Parse(m)
		}
		if err != nil {
			return nil, err
		}

		if i == rd.hdu {
			return h, nil
		}

		size, err := h.DataSize()
		if err != nil {
			return nil, fmt.Errorf("unable to size data unit %d: %w", i, err)
		}

		if err := s.SkipData(size); err != nil {
			return nil, err
		}
	}
}

// ReadHeader reads a FITS header from the file at the given path. This is
// the usual entrypoint for reading a file:
//
//	h, err := fits.ReadHeader("image.fits.gz")
//	if err != nil { ... }
//	naxis, err := h.GetNaxis()
func ReadHeader(path string, opts ...ReadOption) (*header.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	h, err := ReadHeaderFrom(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return h, nil
}

// ReadHeaders reads the headers of many files concurrently and returns them
// keyed by path. The first error encountered aborts the whole read.
func ReadHeaders(paths []string, opts ...ReadOption) (map[string]*header.Header, error) {
	var (
		mu sync.Mutex
		hs = make(map[string]*header.Header, len(paths))
	)

	grp := new(errgroup.Group)
	for _, path := range paths {
		path := path
		grp.Go(func() error {
			h, err := ReadHeader(path, opts...)
			if err != nil {
				return err
			}

			mu.Lock()
			hs[path] = h
			mu.Unlock()

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return hs, nil
}

// IsGzipFile checks whether the file at the given path is gzip-compressed by
// reading its magic number.
func IsGzipFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	var magic [2]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return false, err
	}

	return magic[0] == 0x1f && magic[1] == 0x8b, nil
}
