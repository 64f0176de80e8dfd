package header

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextDecoder turns fixed-width, NUL-padded byte fields into strings.
//
// Decoding never fails: bytes the encoding cannot represent become U+FFFD.
type TextDecoder struct {
	enc encoding.Encoding
}

// NewTextDecoder returns a decoder for enc. A nil enc means UTF-8.
func NewTextDecoder(enc encoding.Encoding) TextDecoder {
	if enc == nil {
		enc = unicode.UTF8
	}
	return TextDecoder{enc: enc}
}

// Decode cuts b at the first NUL, trims trailing whitespace and decodes
// the remainder.
func (d TextDecoder) Decode(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	b = bytes.TrimRight(b, " \t\r\n")
	if len(b) == 0 {
		return ""
	}

	enc := d.enc
	if enc == nil {
		enc = unicode.UTF8
	}

	var out []byte
	for len(b) > 0 {
		dec, n, err := transform.Bytes(enc.NewDecoder(), b)
		out = append(out, dec...)
		if err == nil {
			break
		}
		// Skip the byte the decoder stopped at and resume after it.
		out = utf8.AppendRune(out, utf8.RuneError)
		b = b[min(n+1, len(b)):]
	}
	// Some single-byte decoders pass undefined bytes through unchanged.
	return strings.ToValidUTF8(string(out), string(utf8.RuneError))
}
