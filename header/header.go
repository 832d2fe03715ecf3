// Package header provides the FITS header model: an ordered collection of
// keywords with typed access to their values.
package header

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/zostay/go-fits/header/keyword"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchKeyword is returned by Header methods when the operation
	// being performed failed because the named keyword does not exist.
	ErrNoSuchKeyword = errors.New("no such header keyword")

	// ErrManyKeywords is returned by Header methods when there are multiple
	// keywords with the given name. The first value found is still returned.
	ErrManyKeywords = errors.New("many header keywords found")

	// ErrWrongType is returned by the typed getter methods when the keyword
	// exists but its value has a different type.
	ErrWrongType = errors.New("header keyword has the wrong type")
)

// These are keywords defined by the FITS standard.
const (
	Simple   = "SIMPLE"
	Bitpix   = "BITPIX"
	Naxis    = "NAXIS"
	Extend   = "EXTEND"
	Pcount   = "PCOUNT"
	Gcount   = "GCOUNT"
	Xtension = "XTENSION"
	Object   = "OBJECT"
	Date     = "DATE"
	DateObs  = "DATE-OBS"
	End      = "END"
)

// FITSDate is the date format prescribed by the FITS standard, with or
// without fractional seconds.
const FITSDate = "2006-01-02T15:04:05"

// FITSDateOld is the two-digit-year date format found in files written last
// century.
const FITSDateOld = "02/01/06"

// Header wraps a Base, which does the actual storage and low-level keyword
// manipulation. This provides several methods to make reading and
// manipulating the header more convenient and some caching for values parsed
// from keyword text, such as dates.
//
// The getter methods of this object will return an error if the keyword
// being fetched has not been set on the header. The error returned will be
// ErrNoSuchKeyword.
type Header struct {
	// Base provides the low-level storage of header keywords.
	Base

	// valueCache holds parsed values that are expensive to rebuild, such as
	// times. Only immutable types may be stored here or the cache could
	// drift from the keywords themselves.
	valueCache map[string]any
}

// Clone returns a deep copy of the header object. The keywords themselves
// are copied, so changes to the clone do not touch the original.
func (h *Header) Clone() *Header {
	ks := make([]*keyword.Keyword, len(h.keywords))
	for i, k := range h.keywords {
		kc := *k
		ks[i] = &kc
	}

	vc := make(map[string]any, len(h.valueCache))
	for k, v := range h.valueCache {
		vc[k] = v
	}

	return &Header{
		Base:       Base{keywords: ks},
		valueCache: vc,
	}
}

// getValue retrieves the cached value. The second value is true if a cached
// value was set. Cache keys are lowercased so they agree with the
// case-insensitive keyword lookup.
func (h *Header) getValue(name string) (any, bool) {
	n := strings.ToLower(name)
	v, found := h.valueCache[n]
	return v, found
}

// setValue replaces the cached value for the given name.
func (h *Header) setValue(name string, value any) {
	if h.valueCache == nil {
		h.valueCache = make(map[string]any, h.Size())
	}
	n := strings.ToLower(name)
	h.valueCache[n] = value
}

// Get retrieves the typed value of the named keyword.
//
// If the named keyword is not set in the header, it will return the null
// value with ErrNoSuchKeyword. If there are multiple keywords with the given
// name, it will return the first value found along with ErrManyKeywords.
func (h *Header) Get(name string) (keyword.Value, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return keyword.NullValue(), ErrNoSuchKeyword
	}

	v := h.GetKeyword(ixs[0]).Value()
	if len(ixs) > 1 {
		return v, ErrManyKeywords
	}

	return v, nil
}

// GetString retrieves the named keyword as a character value. It returns
// ErrWrongType when the keyword holds some other type of value.
func (h *Header) GetString(name string) (string, error) {
	v, err := h.Get(name)
	if err != nil {
		return "", err
	}

	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("%w: %s is %s, not string", ErrWrongType, name, v.Kind())
	}

	return s, nil
}

// GetInt retrieves the named keyword as an integer value. It returns
// ErrWrongType when the keyword holds some other type of value.
func (h *Header) GetInt(name string) (int64, error) {
	v, err := h.Get(name)
	if err != nil {
		return 0, err
	}

	i, ok := v.AsInt()
	if !ok {
		return 0, fmt.Errorf("%w: %s is %s, not integer", ErrWrongType, name, v.Kind())
	}

	return i, nil
}

// GetFloat retrieves the named keyword as a floating point value. Integer
// keywords are converted. It returns ErrWrongType for any other type of
// value.
func (h *Header) GetFloat(name string) (float64, error) {
	v, err := h.Get(name)
	if err != nil {
		return 0, err
	}

	f, ok := v.AsFloat()
	if !ok {
		return 0, fmt.Errorf("%w: %s is %s, not float", ErrWrongType, name, v.Kind())
	}

	return f, nil
}

// GetBool retrieves the named keyword as a logical value. It returns
// ErrWrongType when the keyword holds some other type of value.
func (h *Header) GetBool(name string) (bool, error) {
	v, err := h.Get(name)
	if err != nil {
		return false, err
	}

	b, ok := v.AsBool()
	if !ok {
		return false, fmt.Errorf("%w: %s is %s, not bool", ErrWrongType, name, v.Kind())
	}

	return b, nil
}

// GetComment retrieves the comment attached to the named keyword.
//
// It returns an empty string with ErrNoSuchKeyword if the keyword is not set
// on the header.
func (h *Header) GetComment(name string) (string, error) {
	k := h.GetKeywordNamed(name, 0)
	if k == nil {
		return "", ErrNoSuchKeyword
	}
	return k.Comment(), nil
}

// ParseTime is the time parsing used by GetTime to turn a character keyword
// value into a time.Time. It tries the FITS date formats first and then
// falls back to parsing the string in many other formats.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	for _, f := range []string{FITSDate, "2006-01-02", FITSDateOld} {
		if t, err := time.Parse(f, body); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// getTime parses the keyword value as a date and caches the result.
func (h *Header) getTime(name string) (time.Time, error) {
	body, err := h.GetString(name)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ParseTime(body)
	if err != nil {
		return t, err
	}

	h.setValue(name, t)

	return t, nil
}

// GetTime gets the given keyword as a time.Time. The keyword must hold a
// character value. It will attempt to parse the date in many formats, not
// just the formats prescribed by the FITS standard (though it will try those
// first).
//
// It will return an error if it is unable to parse the time value. It will
// return the zero value and ErrNoSuchKeyword if the keyword does not exist.
func (h *Header) GetTime(name string) (time.Time, error) {
	v, found := h.getValue(name)
	if !found {
		return h.getTime(name)
	}

	t, isTime := v.(time.Time)
	if !isTime {
		return h.getTime(name)
	}

	return t, nil
}

// Set will replace all existing keywords with the given name with a single
// keyword holding the given value. If the keyword already exists on the
// header, then the first occurrence will be replaced with this value and any
// other occurrences will be deleted. If the keyword does not exist, it will
// be appended to the end of the header.
func (h *Header) Set(name string, value keyword.Value) {
	delete(h.valueCache, strings.ToLower(name))

	// Check for existing keywords
	ixs := h.GetIndexesNamed(name)

	// if none, append the new keyword and we're done
	if len(ixs) == 0 {
		h.AddKeyword(keyword.New(name, value))
		return
	}

	// if more than one, we're setting so delete any but the first
	if len(ixs) > 1 {
		for i := len(ixs) - 1; i > 0; i-- {
			// ignore out of range errors, we don't make that mistake here
			_ = h.DeleteKeyword(ixs[i])
		}
	}

	// replace the value on the keyword we want to keep
	k := h.GetKeyword(ixs[0])
	k.SetName(name)
	k.SetValue(value)
}

// SetString replaces the named keyword with a character value.
func (h *Header) SetString(name, value string) {
	h.Set(name, keyword.StringValue(value))
}

// SetInt replaces the named keyword with an integer value.
func (h *Header) SetInt(name string, value int64) {
	h.Set(name, keyword.IntegerValue(value))
}

// SetFloat replaces the named keyword with a floating point value.
func (h *Header) SetFloat(name string, value float64) {
	h.Set(name, keyword.FloatValue(value))
}

// SetBool replaces the named keyword with a logical value.
func (h *Header) SetBool(name string, value bool) {
	h.Set(name, keyword.BoolValue(value))
}

// SetTime replaces the named keyword with a character value holding the time
// in the FITS date format.
func (h *Header) SetTime(name string, value time.Time) {
	h.Set(name, keyword.StringValue(value.UTC().Format(FITSDate)))
	h.setValue(name, value)
}

// SetComment sets the comment on the first keyword with the given name.
//
// It fails with ErrNoSuchKeyword when the keyword is not set on the header.
func (h *Header) SetComment(name, comment string) error {
	k := h.GetKeywordNamed(name, 0)
	if k == nil {
		return ErrNoSuchKeyword
	}
	k.SetComment(comment)
	return nil
}

// GetSimple returns the SIMPLE keyword, which is true when the file claims
// to conform to the FITS standard.
func (h *Header) GetSimple() (bool, error) {
	return h.GetBool(Simple)
}

// GetBitpix returns the BITPIX keyword, the bits per data pixel. Negative
// values indicate floating point data.
func (h *Header) GetBitpix() (int64, error) {
	return h.GetInt(Bitpix)
}

// GetNaxis returns the NAXIS keyword, the number of data axes.
func (h *Header) GetNaxis() (int64, error) {
	return h.GetInt(Naxis)
}

// GetNaxisn returns the NAXISn keyword for the given 1-indexed axis.
func (h *Header) GetNaxisn(n int) (int64, error) {
	return h.GetInt(Naxis + strconv.Itoa(n))
}

// GetExtend returns the EXTEND keyword, which is true when the file may
// contain extensions after the primary data unit.
func (h *Header) GetExtend() (bool, error) {
	return h.GetBool(Extend)
}

// GetObject returns the OBJECT keyword, the name of the observed object.
func (h *Header) GetObject() (string, error) {
	return h.GetString(Object)
}

// GetDateObs returns the DATE-OBS keyword as a time.Time.
func (h *Header) GetDateObs() (time.Time, error) {
	return h.GetTime(DateObs)
}

// DataSize returns the size in bytes of the data unit that follows this
// header in the file, rounded up to a whole number of blocks. The size is
// computed from BITPIX, NAXIS and the NAXISn keywords, with PCOUNT and
// GCOUNT applied for extensions that carry them.
func (h *Header) DataSize() (int64, error) {
	bitpix, err := h.GetBitpix()
	if err != nil {
		return 0, err
	}

	naxis, err := h.GetNaxis()
	if err != nil {
		return 0, err
	}

	if naxis == 0 {
		return 0, nil
	}

	elems := int64(1)
	for i := 1; i <= int(naxis); i++ {
		n, err := h.GetNaxisn(i)
		if err != nil {
			return 0, err
		}
		elems *= n
	}

	pcount, err := h.GetInt(Pcount)
	if errors.Is(err, ErrNoSuchKeyword) {
		pcount = 0
	} else if err != nil {
		return 0, err
	}

	gcount, err := h.GetInt(Gcount)
	if errors.Is(err, ErrNoSuchKeyword) {
		gcount = 1
	} else if err != nil {
		return 0, err
	}

	bitpixAbs := bitpix
	if bitpixAbs < 0 {
		bitpixAbs = -bitpixAbs
	}

	size := bitpixAbs / 8 * gcount * (pcount + elems)

	// round up to a whole number of blocks
	if rem := size % BlockSize; rem != 0 {
		size += BlockSize - rem
	}

	return size, nil
}
