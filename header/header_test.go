package header_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-fits/header"
	"github.com/zostay/go-fits/header/keyword"
)

func newHeader() *header.Header {
	h := &header.Header{}
	h.SetBool(header.Simple, true)
	h.SetInt(header.Bitpix, -32)
	h.SetInt(header.Naxis, 2)
	h.SetInt("NAXIS1", 100)
	h.SetInt("NAXIS2", 100)
	h.SetString(header.Object, "M31")
	h.SetFloat("EXPTIME", 30.5)
	h.SetString(header.DateObs, "2025-12-09T10:11:12")
	return h
}

func TestHeader_Get(t *testing.T) {
	t.Parallel()

	h := newHeader()

	v, err := h.Get(header.Object)
	assert.NoError(t, err)
	assert.Equal(t, keyword.String, v.Kind())

	_, err = h.Get("MISSING")
	assert.ErrorIs(t, err, header.ErrNoSuchKeyword)

	s, err := h.GetString(header.Object)
	assert.NoError(t, err)
	assert.Equal(t, "M31", s)

	i, err := h.GetInt(header.Bitpix)
	assert.NoError(t, err)
	assert.Equal(t, int64(-32), i)

	f, err := h.GetFloat("EXPTIME")
	assert.NoError(t, err)
	assert.Equal(t, 30.5, f)

	// integers convert to float
	f, err = h.GetFloat(header.Bitpix)
	assert.NoError(t, err)
	assert.Equal(t, -32.0, f)

	b, err := h.GetBool(header.Simple)
	assert.NoError(t, err)
	assert.True(t, b)

	_, err = h.GetInt(header.Object)
	assert.ErrorIs(t, err, header.ErrWrongType)
	_, err = h.GetString(header.Simple)
	assert.ErrorIs(t, err, header.ErrWrongType)
	_, err = h.GetBool(header.Bitpix)
	assert.ErrorIs(t, err, header.ErrWrongType)
}

func TestHeader_Duplicates(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.AddKeyword(keyword.New("FILTER", keyword.StringValue("r")))
	h.AddKeyword(keyword.New("FILTER", keyword.StringValue("g")))

	// first occurrence wins, but the duplication is reported
	v, err := h.Get("FILTER")
	assert.ErrorIs(t, err, header.ErrManyKeywords)
	s, _ := v.AsString()
	assert.Equal(t, "r", s)

	// Set collapses the duplicates
	h.SetString("FILTER", "i")
	assert.Equal(t, 1, h.Size())
	s, err = h.GetString("FILTER")
	assert.NoError(t, err)
	assert.Equal(t, "i", s)
}

func TestHeader_Set(t *testing.T) {
	t.Parallel()

	h := &header.Header{}

	// setting a missing keyword appends it
	h.SetInt("NAXIS", 2)
	assert.Equal(t, 1, h.Size())

	// setting it again replaces in place
	h.SetInt("NAXIS", 3)
	assert.Equal(t, 1, h.Size())
	i, err := h.GetInt("NAXIS")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), i)
}

func TestHeader_Comments(t *testing.T) {
	t.Parallel()

	h := newHeader()

	require.NoError(t, h.SetComment(header.Simple, "conforms to FITS standard"))
	c, err := h.GetComment(header.Simple)
	assert.NoError(t, err)
	assert.Equal(t, "conforms to FITS standard", c)

	assert.ErrorIs(t, h.SetComment("MISSING", "nope"), header.ErrNoSuchKeyword)
	_, err = h.GetComment("MISSING")
	assert.ErrorIs(t, err, header.ErrNoSuchKeyword)
}

func TestHeader_GetTime(t *testing.T) {
	t.Parallel()

	h := newHeader()

	d, err := h.GetDateObs()
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 9, 10, 11, 12, 0, time.UTC), d)

	// cached value comes back the same
	d2, err := h.GetTime(header.DateObs)
	assert.NoError(t, err)
	assert.Equal(t, d, d2)

	// fallback parsing for formats outside the standard
	h.SetString(header.Date, "Dec 9, 2025")
	d, err = h.GetTime(header.Date)
	assert.NoError(t, err)
	assert.Equal(t, 2025, d.Year())

	h.SetString("BADDATE", "not a date at all")
	_, err = h.GetTime("BADDATE")
	assert.Error(t, err)

	_, err = h.GetTime("MISSING")
	assert.ErrorIs(t, err, header.ErrNoSuchKeyword)
}

func TestHeader_GetTimeCacheInvalidation(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.SetString(header.DateObs, "2020-01-01T00:00:00")

	// warm the cache under a differently-cased name
	d, err := h.GetTime("date-obs")
	assert.NoError(t, err)
	assert.Equal(t, 2020, d.Year())

	// replacing the keyword must drop the cached time no matter which
	// casing was used to read it
	h.SetTime(header.DateObs, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC))

	d, err = h.GetTime("date-obs")
	assert.NoError(t, err)
	assert.Equal(t, 2030, d.Year())

	h.SetString("Date-Obs", "2040-01-01T00:00:00")

	d, err = h.GetTime(header.DateObs)
	assert.NoError(t, err)
	assert.Equal(t, 2040, d.Year())
}

func TestHeader_SetTime(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.SetTime(header.DateObs, time.Date(2025, 12, 9, 10, 11, 12, 0, time.UTC))

	s, err := h.GetString(header.DateObs)
	assert.NoError(t, err)
	assert.Equal(t, "2025-12-09T10:11:12", s)
}

func TestHeader_StandardHelpers(t *testing.T) {
	t.Parallel()

	h := newHeader()

	simple, err := h.GetSimple()
	assert.NoError(t, err)
	assert.True(t, simple)

	bitpix, err := h.GetBitpix()
	assert.NoError(t, err)
	assert.Equal(t, int64(-32), bitpix)

	naxis, err := h.GetNaxis()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), naxis)

	n1, err := h.GetNaxisn(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), n1)

	obj, err := h.GetObject()
	assert.NoError(t, err)
	assert.Equal(t, "M31", obj)
}

func TestHeader_DataSize(t *testing.T) {
	t.Parallel()

	h := newHeader()

	// 4 bytes per pixel, 100x100 pixels, rounded up to whole blocks
	size, err := h.DataSize()
	assert.NoError(t, err)
	assert.Equal(t, int64(40320), size)

	h.SetInt(header.Naxis, 0)
	size, err = h.DataSize()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), size)

	empty := &header.Header{}
	_, err = empty.DataSize()
	assert.ErrorIs(t, err, header.ErrNoSuchKeyword)
}

func TestHeader_Clone(t *testing.T) {
	t.Parallel()

	h := newHeader()
	c := h.Clone()

	c.SetString(header.Object, "M33")

	obj, err := h.GetObject()
	assert.NoError(t, err)
	assert.Equal(t, "M31", obj)

	obj, err = c.GetObject()
	assert.NoError(t, err)
	assert.Equal(t, "M33", obj)
}
