package charconv

// singleByteDecoder decodes a single-byte encoding through a 128-entry table
// covering 0x80-0xFF. A zero table entry marks an unmapped byte.
type singleByteDecoder struct {
	table *[128]rune
}

func newSingleByteDecoder(table *[128]rune) func() decodeMachine {
	return func() decodeMachine { return &singleByteDecoder{table: table} }
}

func (s *singleByteDecoder) reset() {}
func (s *singleByteDecoder) pendingBytes() int { return 0 }
func (s *singleByteDecoder) asciiValidUpTo(src []byte) int { return ASCIIValidUpTo(src) }

func (s *singleByteDecoder) decodeNext(src []byte, last bool) (rune, int, int, stepResult) {
	if len(src) == 0 {
		return 0, 0, 0, stepUnderflow
	}
	b := src[0]
	if b < 0x80 {
		return rune(b), 1, 0, stepScalar
	}
	r := s.table[b-0x80]
	if r == 0 {
		return 0, 1, 1, stepMalformed
	}
	return r, 1, 0, stepScalar
}

// singleByteEncoder encodes through the reverse of a 128-entry table.
type singleByteEncoder struct {
	reverse map[rune]byte
}

func newSingleByteEncoder(reverse map[rune]byte) func() encodeMachine {
	return func() encodeMachine { return &singleByteEncoder{reverse: reverse} }
}

func (s *singleByteEncoder) encodeRune(dst []byte, r rune) (int, encodeResult) {
	if len(dst) < 1 {
		return 0, encSmallDst
	}
	if r < 0x80 {
		dst[0] = byte(r)
		return 1, encOK
	}
	b, ok := s.reverse[r]
	if !ok {
		return 0, encUnmappable
	}
	dst[0] = b
	return 1, encOK
}

func (s *singleByteEncoder) encodeASCII(dst []byte, ascii []byte) (int, bool) {
	if len(ascii) > len(dst) {
		return 0, false
	}
	return copy(dst, ascii), true
}

func (s *singleByteEncoder) finish(dst []byte) (int, bool) { return 0, true }
func (s *singleByteEncoder) asciiValidUpTo(src []byte) int { return ASCIIValidUpTo(src) }
func (s *singleByteEncoder) maxPerRune() int { return 1 }
func (s *singleByteEncoder) maxShift() int { return 0 }
func (s *singleByteEncoder) perByte8() int { return 1 }
func (s *singleByteEncoder) perUnit16() int { return 1 }

// windows1252Table is the WHATWG windows-1252 mapping for 0x80-0xFF. The
// 0xA0-0xFF half matches ISO 8859-1; 0x80-0x9F carries the Windows repertoire
// with the five unassigned slots passing through as C1 controls.
var windows1252Table = [128]rune{
	0x20AC, 0x0081, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0x008D, 0x017D, 0x008F,
	0x0090, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0x009D, 0x017E, 0x0178,
	0x00A0, 0x00A1, 0x00A2, 0x00A3, 0x00A4, 0x00A5, 0x00A6, 0x00A7,
	0x00A8, 0x00A9, 0x00AA, 0x00AB, 0x00AC, 0x00AD, 0x00AE, 0x00AF,
	0x00B0, 0x00B1, 0x00B2, 0x00B3, 0x00B4, 0x00B5, 0x00B6, 0x00B7,
	0x00B8, 0x00B9, 0x00BA, 0x00BB, 0x00BC, 0x00BD, 0x00BE, 0x00BF,
	0x00C0, 0x00C1, 0x00C2, 0x00C3, 0x00C4, 0x00C5, 0x00C6, 0x00C7,
	0x00C8, 0x00C9, 0x00CA, 0x00CB, 0x00CC, 0x00CD, 0x00CE, 0x00CF,
	0x00D0, 0x00D1, 0x00D2, 0x00D3, 0x00D4, 0x00D5, 0x00D6, 0x00D7,
	0x00D8, 0x00D9, 0x00DA, 0x00DB, 0x00DC, 0x00DD, 0x00DE, 0x00DF,
	0x00E0, 0x00E1, 0x00E2, 0x00E3, 0x00E4, 0x00E5, 0x00E6, 0x00E7,
	0x00E8, 0x00E9, 0x00EA, 0x00EB, 0x00EC, 0x00ED, 0x00EE, 0x00EF,
	0x00F0, 0x00F1, 0x00F2, 0x00F3, 0x00F4, 0x00F5, 0x00F6, 0x00F7,
	0x00F8, 0x00F9, 0x00FA, 0x00FB, 0x00FC, 0x00FD, 0x00FE, 0x00FF,
}

var windows1252Reverse = reverseTable(&windows1252Table)

func reverseTable(table *[128]rune) map[rune]byte {
	m := make(map[rune]byte, len(table))
	for i, r := range table {
		if r != 0 {
			m[r] = byte(0x80 + i)
		}
	}
	return m
}

// x-user-defined maps 0x80-0xFF onto the U+F780-U+F7FF private-use range; no
// table needed in either direction.
type userDefinedDecoder struct{}

func newUserDefinedDecoder() decodeMachine { return userDefinedDecoder{} }

func (userDefinedDecoder) reset() {}
func (userDefinedDecoder) pendingBytes() int { return 0 }
func (userDefinedDecoder) asciiValidUpTo(src []byte) int { return ASCIIValidUpTo(src) }

func (userDefinedDecoder) decodeNext(src []byte, last bool) (rune, int, int, stepResult) {
	if len(src) == 0 {
		return 0, 0, 0, stepUnderflow
	}
	b := src[0]
	if b < 0x80 {
		return rune(b), 1, 0, stepScalar
	}
	return 0xF780 + rune(b) - 0x80, 1, 0, stepScalar
}

type userDefinedEncoder struct{}

func newUserDefinedEncoder() encodeMachine { return userDefinedEncoder{} }

func (userDefinedEncoder) encodeRune(dst []byte, r rune) (int, encodeResult) {
	if len(dst) < 1 {
		return 0, encSmallDst
	}
	switch {
	case r < 0x80:
		dst[0] = byte(r)
	case r >= 0xF780 && r <= 0xF7FF:
		dst[0] = byte(r - 0xF780 + 0x80)
	default:
		return 0, encUnmappable
	}
	return 1, encOK
}

func (userDefinedEncoder) encodeASCII(dst []byte, ascii []byte) (int, bool) {
	if len(ascii) > len(dst) {
		return 0, false
	}
	return copy(dst, ascii), true
}

func (userDefinedEncoder) finish(dst []byte) (int, bool) { return 0, true }
func (userDefinedEncoder) asciiValidUpTo(src []byte) int { return ASCIIValidUpTo(src) }
func (userDefinedEncoder) maxPerRune() int { return 1 }
func (userDefinedEncoder) maxShift() int { return 0 }
func (userDefinedEncoder) perByte8() int { return 1 }
func (userDefinedEncoder) perUnit16() int { return 1 }
