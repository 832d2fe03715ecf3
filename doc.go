// Package fits reads the headers of FITS files, the Flexible Image
// Transport System format used throughout astronomy. It deals only with
// headers. Data units are sized and skipped, never decoded, which keeps
// reading the metadata of a large image or a long stack of extensions
// cheap.
//
// A FITS header is a sequence of 80-byte cards packed into 2880-byte
// blocks and terminated by an END card. Each card carries a keyword name,
// a value, and an optional comment. The value is typed: a quoted
// character string, an integer, a float, a logical T or F, or undefined.
// This library preserves all of that: a header.Header is an ordered
// collection of keyword.Keyword records that remembers file order,
// duplicate keywords, comments, and even the raw bytes of values it could
// not make sense of.
//
// Most users only need the top-level functions. ReadHeader() reads the
// primary header of a file, gzipped or not. Options select an extension
// header (WithHDU), retain COMMENT and HISTORY cards (WithCommentary), or
// bound the scan (WithMaxBlocks). ReadHeaders() reads many files
// concurrently. From the returned header, the typed getters (GetInt,
// GetFloat, GetBool, GetString, GetTime) and the helpers for standard
// keywords (GetBitpix, GetNaxis, GetDateObs, and friends) retrieve
// values without manual type switching.
//
// When a whole set of keywords is wanted as a unit, Decode() maps a
// header onto a tagged struct, with `fits` tags naming keywords and
// `validate` tags checked after mapping. ReadHeaderInto() combines
// reading and decoding in one call.
//
// Headers can also be built or modified through the Set* methods and
// rendered back to standard 2880-byte-block form with Bytes(), which the
// roundtrip harness under test/ uses to check that what we write is what
// we read.
package fits
