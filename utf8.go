package charconv

import "unicode/utf8"

// utf8Needs classifies a UTF-8 lead byte: how many continuation bytes follow,
// the valid range for the first continuation byte, and the payload mask for
// the lead. needed is -1 for bytes that cannot start a sequence.
func utf8Needs(b byte) (needed int, lower, upper, mask byte) {
	switch {
	case b >= 0xC2 && b <= 0xDF:
		return 1, 0x80, 0xBF, 0x1F
	case b == 0xE0:
		return 2, 0xA0, 0xBF, 0x0F
	case b >= 0xE1 && b <= 0xEC || b == 0xEE || b == 0xEF:
		return 2, 0x80, 0xBF, 0x0F
	case b == 0xED:
		return 2, 0x80, 0x9F, 0x0F
	case b == 0xF0:
		return 3, 0x90, 0xBF, 0x07
	case b >= 0xF1 && b <= 0xF3:
		return 3, 0x80, 0xBF, 0x07
	case b == 0xF4:
		return 3, 0x80, 0x8F, 0x07
	}
	return -1, 0, 0, 0
}

// utf8PrefixValid reports whether b is a strict prefix of some valid UTF-8
// sequence (so more bytes could still complete it).
func utf8PrefixValid(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	needed, lower, upper, _ := utf8Needs(b[0])
	if needed < 1 || len(b) > needed {
		return false
	}
	for i := 1; i < len(b); i++ {
		if b[i] < lower || b[i] > upper {
			return false
		}
		lower, upper = 0x80, 0xBF
	}
	return true
}

// utf8Decoder decodes UTF-8 incrementally, one scalar per step, reporting
// malformed sequences by their maximal valid subpart.
type utf8Decoder struct {
	needed       int // continuation bytes still expected; 0 between sequences
	seen         int
	cp           rune
	lower, upper byte
}

func newUTF8Decoder() decodeMachine { return &utf8Decoder{} }

func (u *utf8Decoder) resetState() {
	u.needed = 0
	u.seen = 0
	u.cp = 0
	u.lower, u.upper = 0x80, 0xBF
}

func (u *utf8Decoder) reset() { u.resetState() }

func (u *utf8Decoder) pendingBytes() int {
	if u.needed == 0 {
		return 0
	}
	return u.seen + 1
}

func (u *utf8Decoder) asciiValidUpTo(src []byte) int {
	if u.needed != 0 {
		return 0
	}
	return ASCIIValidUpTo(src)
}

func (u *utf8Decoder) decodeNext(src []byte, last bool) (rune, int, int, stepResult) {
	i := 0
	for i < len(src) {
		b := src[i]
		if u.needed == 0 {
			if b < 0x80 {
				return rune(b), i + 1, 0, stepScalar
			}
			needed, lower, upper, mask := utf8Needs(b)
			if needed < 0 {
				return 0, 1, 1, stepMalformed
			}
			u.needed, u.lower, u.upper = needed, lower, upper
			u.cp = rune(b & mask)
			i++
			continue
		}
		if b < u.lower || b > u.upper {
			// Maximal subpart: the bytes absorbed so far are the error; b
			// itself is re-examined as a fresh lead.
			u.resetState()
			return 0, i, i, stepMalformed
		}
		u.cp = u.cp<<6 | rune(b&0x3F)
		u.lower, u.upper = 0x80, 0xBF
		u.seen++
		i++
		if u.seen == u.needed {
			r := u.cp
			u.resetState()
			return r, i, 0, stepScalar
		}
	}
	if u.needed != 0 && last {
		u.resetState()
		return 0, i, i, stepMalformed
	}
	return 0, i, 0, stepUnderflow
}

// utf8Encoder encodes scalar values as UTF-8. Everything is mappable.
type utf8Encoder struct{}

func newUTF8Encoder() encodeMachine { return utf8Encoder{} }

func (utf8Encoder) encodeRune(dst []byte, r rune) (int, encodeResult) {
	if utf8.RuneLen(r) > len(dst) {
		return 0, encSmallDst
	}
	return utf8.EncodeRune(dst, r), encOK
}

func (utf8Encoder) encodeASCII(dst []byte, s []byte) (int, bool) {
	if len(s) > len(dst) {
		return 0, false
	}
	return copy(dst, s), true
}

func (utf8Encoder) finish(dst []byte) (int, bool) { return 0, true }

func (utf8Encoder) asciiValidUpTo(src []byte) int { return ASCIIValidUpTo(src) }

func (utf8Encoder) maxPerRune() int { return utf8.UTFMax }
func (utf8Encoder) maxShift() int { return 0 }
func (utf8Encoder) perByte8() int { return 1 }
func (utf8Encoder) perUnit16() int { return 3 }
