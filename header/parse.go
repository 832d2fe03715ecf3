package header

import (
	"github.com/zostay/go-fits/header/keyword"
)

// Parse will parse the given slice of bytes into a FITS header. The input is
// expected to contain the header cards only, without the END card or the
// blank padding that follows it in a file. Cards that do not match the
// keyword card structure, including commentary cards, are skipped.
func Parse(m []byte) (*Header, error) {
	return parse(m, false)
}

// ParseCommentary works as Parse, but COMMENT, HISTORY, and blank-keyword
// cards are retained as commentary keywords rather than skipped.
func ParseCommentary(m []byte) (*Header, error) {
	return parse(m, true)
}

func parse(m []byte, commentary bool) (*Header, error) {
	h := &Header{}

	for off := 0; off < len(m); off += CardSize {
		end := off + CardSize
		if end > len(m) {
			end = len(m)
		}
		card := m[off:end]

		if commentary {
			if k := keyword.ParseCommentary(card); k != nil {
				h.AddKeyword(k)
				continue
			}
		}

		if k := keyword.Parse(card); k != nil {
			h.AddKeyword(k)
		}
	}

	return h, nil
}
