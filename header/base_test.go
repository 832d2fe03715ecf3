package header_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-fits/header"
	"github.com/zostay/go-fits/header/keyword"
)

func newBase() *header.Base {
	h := &header.Base{}
	h.AddKeyword(keyword.New("SIMPLE", keyword.BoolValue(true)))
	h.AddKeyword(keyword.New("BITPIX", keyword.IntegerValue(8)))
	h.AddKeyword(keyword.New("NAXIS", keyword.IntegerValue(0)))
	h.AddKeyword(keyword.New("FILTER", keyword.StringValue("r")))
	h.AddKeyword(keyword.New("FILTER", keyword.StringValue("g")))
	return h
}

func TestBase_Lookup(t *testing.T) {
	t.Parallel()

	h := newBase()

	assert.Equal(t, 5, h.Size())

	assert.Equal(t, "SIMPLE", h.GetKeyword(0).Name())
	assert.Nil(t, h.GetKeyword(5))
	assert.Nil(t, h.GetKeyword(-1))

	k := h.GetKeywordNamed("BITPIX", 0)
	require.NotNil(t, k)
	i, _ := k.Value().AsInt()
	assert.Equal(t, int64(8), i)

	k = h.GetKeywordNamed("FILTER", 1)
	require.NotNil(t, k)
	s, _ := k.Value().AsString()
	assert.Equal(t, "g", s)

	assert.Nil(t, h.GetKeywordNamed("FILTER", 2))
	assert.Nil(t, h.GetKeywordNamed("MISSING", 0))

	assert.Len(t, h.GetAllKeywordsNamed("FILTER"), 2)
	assert.Equal(t, []int{3, 4}, h.GetIndexesNamed("FILTER"))

	names := make([]string, 0, h.Size())
	for _, k := range h.ListKeywords() {
		names = append(names, k.Name())
	}
	assert.Equal(t, []string{"SIMPLE", "BITPIX", "NAXIS", "FILTER", "FILTER"}, names)
}

func TestBase_InsertDelete(t *testing.T) {
	t.Parallel()

	h := newBase()

	h.InsertBeforeKeyword(1, keyword.New("EXTEND", keyword.BoolValue(true)))
	assert.Equal(t, "EXTEND", h.GetKeyword(1).Name())
	assert.Equal(t, "BITPIX", h.GetKeyword(2).Name())

	// out of range indexes clamp
	h.InsertBeforeKeyword(-10, keyword.New("FIRST", keyword.NullValue()))
	assert.Equal(t, "FIRST", h.GetKeyword(0).Name())
	h.InsertBeforeKeyword(100, keyword.New("LAST", keyword.NullValue()))
	assert.Equal(t, "LAST", h.GetKeyword(h.Size()-1).Name())

	require.NoError(t, h.DeleteKeyword(0))
	assert.Equal(t, "SIMPLE", h.GetKeyword(0).Name())

	assert.ErrorIs(t, h.DeleteKeyword(-1), header.ErrIndexOutOfRange)
	assert.ErrorIs(t, h.DeleteKeyword(h.Size()), header.ErrIndexOutOfRange)

	h.ClearKeywords()
	assert.Equal(t, 0, h.Size())
}

func TestBase_Bytes(t *testing.T) {
	t.Parallel()

	h := newBase()
	b := h.Bytes()

	// whole number of blocks
	assert.Equal(t, 0, len(b)%header.BlockSize)
	assert.Equal(t, header.BlockSize, len(b))

	// the END card follows the last keyword
	end := b[5*header.CardSize : 6*header.CardSize]
	assert.Equal(t, "END", string(bytes.TrimRight(end, " ")))

	// everything after END is blank
	assert.Equal(t, "", string(bytes.TrimRight(b[6*header.CardSize:], " ")))
}
