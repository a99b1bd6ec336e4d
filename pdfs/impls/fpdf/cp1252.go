package fpdf

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// The core fonts (Times, Helvetica, Courier) are single-byte and expect
// Windows-1252 text. Runes outside the code page become '?'.
type cp1252 struct {
	enc *encoding.Encoder
	dec *encoding.Decoder
}

func newCP1252() *cp1252 {
	return &cp1252{
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
		dec: charmap.Windows1252.NewDecoder(),
	}
}

func (c *cp1252) encode(s string) string {
	out, err := c.enc.String(s)
	if err != nil {
		return s
	}
	return out
}

func (c *cp1252) decode(b []byte) string {
	out, err := c.dec.Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
