package header

import (
	"bytes"
	"errors"
	"strings"

	"github.com/zostay/go-fits/header/keyword"
)

// Sizes fixed by the FITS standard.
const (
	// BlockSize is the length of a header block. Headers always occupy a
	// whole number of blocks, padded with blanks.
	BlockSize = 2880

	// CardSize is the length of a single keyword card.
	CardSize = keyword.CardSize
)

var (
	// ErrIndexOutOfRange is returned when an attempt is made to access a
	// keyword index that is too large or too small.
	ErrIndexOutOfRange = errors.New("header keyword index is out of range")
)

// endCard is the card that terminates a header on output.
var endCard = func() []byte {
	b := make([]byte, CardSize)
	copy(b, "END")
	for i := 3; i < CardSize; i++ {
		b[i] = ' '
	}
	return b
}()

// Base represents the basic storage of a FITS header. It is a low-level
// interface that keeps keywords in file order and provides lookup by index
// and by name.
type Base struct {
	keywords []*keyword.Keyword
}

// initBase initializes the keyword storage lazily. A standard header block
// holds 36 cards, so that is the initial capacity.
func (h *Base) initBase() {
	if h.keywords == nil {
		h.keywords = make([]*keyword.Keyword, 0, 36)
	}
}

// Size returns the number of keywords in the header.
func (h *Base) Size() int {
	return len(h.keywords)
}

// GetKeyword returns the nth keyword or nil if the index is out of range.
func (h *Base) GetKeyword(n int) *keyword.Keyword {
	if n < 0 || n >= len(h.keywords) {
		return nil
	}
	return h.keywords[n]
}

// GetKeywordNamed returns the nth (0-indexed) keyword with the given name or
// nil if no such keyword is set. Names are compared without regard to case,
// though conforming headers only use upper case.
func (h *Base) GetKeywordNamed(name string, n int) *keyword.Keyword {
	for _, k := range h.keywords {
		if strings.EqualFold(k.Name(), name) {
			if n == 0 {
				return k
			}
			n--
		}
	}
	return nil
}

// GetAllKeywordsNamed returns all the keywords with the given name or nil if
// no keywords are set with that name.
func (h *Base) GetAllKeywordsNamed(name string) []*keyword.Keyword {
	ks := make([]*keyword.Keyword, 0, 10)
	for _, k := range h.keywords {
		if strings.EqualFold(k.Name(), name) {
			ks = append(ks, k)
		}
	}
	return ks
}

// GetIndexesNamed returns the indexes of keywords with the given name.
func (h *Base) GetIndexesNamed(name string) []int {
	is := make([]int, 0, 10)
	for i, k := range h.keywords {
		if strings.EqualFold(k.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// ListKeywords returns all the keywords in the header in file order.
func (h *Base) ListKeywords() []*keyword.Keyword {
	ks := make([]*keyword.Keyword, len(h.keywords))
	copy(ks, h.keywords)
	return ks
}

// AddKeyword appends a keyword to the end of the header.
func (h *Base) AddKeyword(k *keyword.Keyword) {
	h.initBase()
	h.keywords = append(h.keywords, k)
}

// InsertBeforeKeyword inserts the given keyword into the header at the given
// index.
func (h *Base) InsertBeforeKeyword(n int, k *keyword.Keyword) {
	h.initBase()

	// cap the range of n to 0..len(h.keywords)
	if n < 0 {
		n = 0
	}
	if n > len(h.keywords) {
		n = len(h.keywords)
	}

	// make room for the new keyword
	h.keywords = append(h.keywords, nil)

	// move existing keywords out of the way
	copy(h.keywords[n+1:], h.keywords[n:])

	// insert
	h.keywords[n] = k
}

// ClearKeywords removes all keywords from the header.
func (h *Base) ClearKeywords() {
	h.initBase()
	h.keywords = h.keywords[:0]
}

// DeleteKeyword removes the nth keyword from the header. Fails with an error
// if the given index is out of range.
func (h *Base) DeleteKeyword(n int) error {
	h.initBase()

	// bounds check
	if n < 0 || n >= len(h.keywords) {
		return ErrIndexOutOfRange
	}

	// copy over the removed keyword
	copy(h.keywords[n:], h.keywords[n+1:])

	// shorten the slice by one
	h.keywords = h.keywords[:len(h.keywords)-1]

	return nil
}

// Bytes renders the header as it would appear in a file: one 80-byte card
// per keyword, an END card, and blank padding out to a whole number of
// 2880-byte blocks.
func (h *Base) Bytes() []byte {
	var buf bytes.Buffer
	for _, k := range h.keywords {
		buf.Write(k.Bytes())
	}
	buf.Write(endCard)

	for buf.Len()%BlockSize != 0 {
		buf.WriteByte(' ')
	}

	return buf.Bytes()
}

// String returns the rendered header as a string.
func (h *Base) String() string {
	return string(h.Bytes())
}
