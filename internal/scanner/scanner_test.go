package scanner_test

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-fits/internal/scanner"
)

// card pads a string out to a full 80-byte card.
func card(s string) []byte {
	b := make([]byte, scanner.CardSize)
	n := copy(b, s)
	for i := n; i < scanner.CardSize; i++ {
		b[i] = ' '
	}
	return b
}

// block builds a full 2880-byte block from the given cards, padding the rest
// with blank cards.
func block(cards ...string) []byte {
	var buf bytes.Buffer
	for _, c := range cards {
		buf.Write(card(c))
	}
	for buf.Len() < scanner.BlockSize {
		buf.Write(card(""))
	}
	return buf.Bytes()
}

func TestScanner_ReadHeader(t *testing.T) {
	t.Parallel()

	in := block(
		"SIMPLE  =                    T",
		"BITPIX  =                    8",
		"END",
	)

	s, err := scanner.New(bytes.NewReader(in), 0)
	require.NoError(t, err)

	m, err := s.ReadHeader()
	require.NoError(t, err)

	// header bytes run up to, but not including, the END card
	assert.Len(t, m, 2*scanner.CardSize)
	assert.Equal(t, "SIMPLE", string(m[:6]))
}

func TestScanner_ReadHeaderMultiBlock(t *testing.T) {
	t.Parallel()

	var cs []string
	for i := 0; i < 36; i++ {
		cs = append(cs, "NAXIS   =                    0")
	}

	in := append(block(cs...), block("OBJECT  = 'M31     '", "END")...)

	s, err := scanner.New(bytes.NewReader(in), 0)
	require.NoError(t, err)

	m, err := s.ReadHeader()
	require.NoError(t, err)
	assert.Len(t, m, scanner.BlockSize+scanner.CardSize)
}

func TestScanner_ReadHeaderGzip(t *testing.T) {
	t.Parallel()

	in := block("SIMPLE  =                    T", "END")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(in)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	s, err := scanner.New(bytes.NewReader(buf.Bytes()), 0)
	require.NoError(t, err)

	m, err := s.ReadHeader()
	require.NoError(t, err)
	assert.Len(t, m, scanner.CardSize)
	assert.Equal(t, "SIMPLE", string(m[:6]))
}

func TestScanner_MissingEND(t *testing.T) {
	t.Parallel()

	in := block("SIMPLE  =                    T")

	s, err := scanner.New(bytes.NewReader(in), 1)
	require.NoError(t, err)

	_, err = s.ReadHeader()
	assert.ErrorIs(t, err, scanner.ErrMissingEND)
}

func TestScanner_Truncated(t *testing.T) {
	t.Parallel()

	s, err := scanner.New(bytes.NewReader(card("SIMPLE  =                    T")), 0)
	require.NoError(t, err)

	_, err = s.ReadHeader()
	assert.ErrorIs(t, err, scanner.ErrTruncated)
}

func TestScanner_SkipData(t *testing.T) {
	t.Parallel()

	in := append(block("END"), make([]byte, scanner.BlockSize)...)
	in = append(in, block("XTENSION= 'IMAGE   '", "END")...)

	s, err := scanner.New(bytes.NewReader(in), 0)
	require.NoError(t, err)

	_, err = s.ReadHeader()
	require.NoError(t, err)

	require.NoError(t, s.SkipData(scanner.BlockSize))

	m, err := s.ReadHeader()
	require.NoError(t, err)
	assert.Equal(t, "XTENSION", string(m[:8]))
}

func TestScanner_ENDInsideString(t *testing.T) {
	t.Parallel()

	// an END embedded in a value must not terminate the header
	in := block("OBJECT  = 'END     '", "END")

	s, err := scanner.New(bytes.NewReader(in), 0)
	require.NoError(t, err)

	m, err := s.ReadHeader()
	require.NoError(t, err)
	assert.Len(t, m, scanner.CardSize)
}
