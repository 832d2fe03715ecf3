package fits

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zostay/go-fits/header"
	"github.com/zostay/go-fits/header/keyword"
)

// ErrDecodeTarget is returned by Decode when the destination is not a
// non-nil pointer to a struct.
var ErrDecodeTarget = errors.New("decode target must be a non-nil struct pointer")

// validate checks `validate` tags on decoded structs. A single instance
// caches the parsed struct metadata.
var validate = validator.New()

var (
	timeType    = reflect.TypeOf(time.Time{})
	valueType   = reflect.TypeOf(keyword.Value{})
	keywordType = reflect.TypeOf((*keyword.Keyword)(nil))
)

// Decode maps the keywords of a header onto the fields of a struct. The
// keyword name for a field is taken from the `fits` tag or, when the tag is
// absent, from the upper-cased field name. A tag of "-" skips the field.
//
//	type Image struct {
//		Bitpix  int64     `fits:"BITPIX" validate:"required"`
//		Object  string    `fits:"OBJECT"`
//		DateObs time.Time `fits:"DATE-OBS"`
//		Airmass *float64  `fits:"AIRMASS"`
//	}
//
// Fields may be strings, integers, floats, bools, time.Time, keyword.Value,
// *keyword.Keyword, or pointers to any of those. A pointer field is left nil
// when the keyword is absent; other fields are left at their zero value.
// After mapping, any `validate` tags on the struct are checked and the
// resulting validation error, if any, is returned.
func Decode(h *header.Header, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrDecodeTarget
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return ErrDecodeTarget
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		ft := rt.Field(i)
		if ft.PkgPath != "" {
			// unexported
			continue
		}

		name := ft.Tag.Get("fits")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToUpper(ft.Name)
		}

		k := h.GetKeywordNamed(name, 0)
		if k == nil {
			continue
		}

		if err := assign(rv.Field(i), k); err != nil {
			return fmt.Errorf("keyword %s: %w", name, err)
		}
	}

	return validate.Struct(v)
}

// assign stores the value of a keyword into a single struct field.
func assign(fv reflect.Value, k *keyword.Keyword) error {
	ft := fv.Type()

	switch ft {
	case keywordType:
		fv.Set(reflect.ValueOf(k))
		return nil
	case valueType:
		fv.Set(reflect.ValueOf(k.Value()))
		return nil
	case timeType:
		s, ok := k.Value().AsString()
		if !ok {
			return typeError(k, "time")
		}
		t, err := header.ParseTime(s)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	}

	switch ft.Kind() {
	case reflect.Ptr:
		p := reflect.New(ft.Elem())
		if err := assign(p.Elem(), k); err != nil {
			return err
		}
		fv.Set(p)
		return nil

	case reflect.String:
		s, ok := k.Value().AsString()
		if !ok {
			return typeError(k, "string")
		}
		fv.SetString(s)
		return nil

	case reflect.Bool:
		b, ok := k.Value().AsBool()
		if !ok {
			return typeError(k, "bool")
		}
		fv.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := k.Value().AsInt()
		if !ok {
			return typeError(k, "integer")
		}
		if fv.OverflowInt(i) {
			return fmt.Errorf("value %d overflows %s", i, ft)
		}
		fv.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := k.Value().AsInt()
		if !ok {
			return typeError(k, "integer")
		}
		if i < 0 || fv.OverflowUint(uint64(i)) {
			return fmt.Errorf("value %d overflows %s", i, ft)
		}
		fv.SetUint(uint64(i))
		return nil

	case reflect.Float32, reflect.Float64:
		f, ok := k.Value().AsFloat()
		if !ok {
			return typeError(k, "float")
		}
		fv.SetFloat(f)
		return nil
	}

	return fmt.Errorf("unsupported field type %s", ft)
}

func typeError(k *keyword.Keyword, want string) error {
	return fmt.Errorf("%w: value is %s, not %s",
		header.ErrWrongType, k.Value().Kind(), want)
}

// ReadHeaderInto reads the header of the file at the given path and decodes
// it into the given struct in one step.
func ReadHeaderInto(path string, v any, opts ...ReadOption) error {
	h, err := ReadHeader(path, opts...)
	if err != nil {
		return err
	}
	return Decode(h, v)
}
