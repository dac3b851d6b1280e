package classfile

import (
	"unicode/utf16"
)

// DecodeMUTF8 decodes the modified UTF-8 used by CONSTANT_Utf8 entries and
// by DataOutput.writeUTF.
// Malformed sequences decode byte-wise so that a name never fails to print.
func DecodeMUTF8(b []byte) string {
	units := make([]uint16, 0, len(b))

	for i := 0; i < len(b); {
		c := b[i]

		switch {
		case c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xe0 == 0xc0 && i+1 < len(b):
			units = append(units, uint16(c&0x1f)<<6|uint16(b[i+1]&0x3f))
			i += 2
		case c&0xf0 == 0xe0 && i+2 < len(b):
			units = append(units, uint16(c&0x0f)<<12|uint16(b[i+1]&0x3f)<<6|uint16(b[i+2]&0x3f))
			i += 3
		default:
			units = append(units, uint16(c))
			i++
		}
	}

	return string(utf16.Decode(units))
}

// EncodeMUTF8 encodes s as modified UTF-8: NUL takes two bytes and
// supplementary characters are written as surrogate pairs.
func EncodeMUTF8(s string) []byte {
	out := make([]byte, 0, len(s))

	for _, r := range s {
		var units []uint16
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			units = []uint16{uint16(hi), uint16(lo)}
		} else {
			units = []uint16{uint16(r)}
		}

		for _, u := range units {
			switch {
			case u != 0 && u < 0x80:
				out = append(out, byte(u))
			case u < 0x800:
				out = append(out, byte(0xc0|u>>6), byte(0x80|u&0x3f))
			default:
				out = append(out, byte(0xe0|u>>12), byte(0x80|(u>>6)&0x3f), byte(0x80|u&0x3f))
			}
		}
	}

	return out
}
