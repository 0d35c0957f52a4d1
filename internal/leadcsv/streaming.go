package leadcsv

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source encodings recognized by ReadText.
const (
	EncodingUTF8     = "UTF-8"
	EncodingShiftJIS = "Shift_JIS"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewUTF8Reader wraps r so that a leading byte-order mark is dropped and
// invalid UTF-8 is replaced with U+FFFD as it streams. A UTF-16 BOM
// switches decoding to UTF-16.
func NewUTF8Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// CountingReader tracks bytes read from the wrapped reader.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.BytesRead += int64(n)
	return n, err
}

// ReadText reads all of r and returns it as UTF-8 text without a BOM.
//
// Files saved by spreadsheet software on Japanese systems are often
// Shift_JIS. Input that has no BOM and is not valid UTF-8 is decoded as
// Shift_JIS; anything else is read as UTF-8 with invalid bytes replaced.
func ReadText(r io.Reader) (text string, encoding string, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", "", err
	}

	if !bytes.HasPrefix(raw, utf8BOM) && !utf8.Valid(raw) && looksLikeShiftJIS(raw) {
		out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
		if err != nil {
			return "", "", err
		}
		return string(out), EncodingShiftJIS, nil
	}

	out, err := io.ReadAll(NewUTF8Reader(bytes.NewReader(raw)))
	if err != nil {
		return "", "", err
	}
	return string(out), EncodingUTF8, nil
}

// looksLikeShiftJIS reports whether every non-ASCII byte in raw belongs to
// a well-formed Shift_JIS lead/trail pair or a half-width katakana byte.
func looksLikeShiftJIS(raw []byte) bool {
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		switch {
		case b < 0x80:
		case b >= 0xA1 && b <= 0xDF:
		case (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xFC):
			if i+1 >= len(raw) {
				return false
			}
			t := raw[i+1]
			if t < 0x40 || t == 0x7F || t > 0xFC {
				return false
			}
			i++
		default:
			return false
		}
	}
	return true
}
