package charconv

import (
	"strconv"
	"unicode/utf8"
)

// Encoder converts Unicode text supplied as UTF-8 or UTF-16 into a byte
// stream in the target encoding. Feed successive buffers with last=false and
// exactly one final call with last=true; the final call flushes any terminal
// shift sequence, and once it returns InputExhausted the Encoder must not be
// used again.
//
// An Encoder is owned by a single stream; it is not safe for concurrent use.
type Encoder struct {
	encoding *Encoding
	codec    encodeMachine
	finished bool
}

func newEncoder(e *Encoding) *Encoder {
	return &Encoder{encoding: e, codec: e.newEncodeMachine()}
}

// Encoding returns the encoding this Encoder is encoding into.
func (e *Encoder) Encoding() *Encoding { return e.encoding }

func (e *Encoder) reset() {
	e.codec = e.encoding.newEncodeMachine()
	e.finished = false
}

// EncodeFromUTF8 encodes into dst, substituting a decimal numeric character
// reference (&#NNNN;) for every scalar the target cannot represent. The
// returned flag reports whether any substitution happened during this call.
// dst must be at least MinEncodeBufferLength bytes.
func (e *Encoder) EncodeFromUTF8(dst, src []byte, last bool) (nDst, nSrc int, status Status, hadUnmappables bool) {
	return e.encodeFromUTF8(dst, src, last, true)
}

// EncodeFromUTF8WithoutReplacement encodes into dst, stopping at the first
// scalar the target cannot represent with its input bytes left unconsumed.
// dst must be at least MinEncodeBufferLength bytes.
func (e *Encoder) EncodeFromUTF8WithoutReplacement(dst, src []byte, last bool) (nDst, nSrc int, status Status) {
	nDst, nSrc, status, _ = e.encodeFromUTF8(dst, src, last, false)
	return nDst, nSrc, status
}

func (e *Encoder) encodeFromUTF8(dst, src []byte, last, replace bool) (nDst, nSrc int, _ Status, had bool) {
	e.checkCall(dst)

	for {
		if run := e.codec.asciiValidUpTo(src[nSrc:]); run > 0 {
			if max := len(dst) - nDst - e.codec.maxShift(); run > max {
				run = max
			}
			if run > 0 {
				n, ok := e.codec.encodeASCII(dst[nDst:], src[nSrc:nSrc+run])
				if !ok {
					return nDst, nSrc, OutputFull, had
				}
				nDst += n
				nSrc += run
			}
		}
		if nSrc == len(src) {
			return e.finishStream(dst, nDst, nSrc, last, had)
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size <= 1 {
			if !last && utf8PrefixValid(src[nSrc:]) {
				// A scalar split across the call boundary: leave it for the
				// caller to re-present with the rest of its bytes.
				return nDst, nSrc, InputExhausted, had
			}
			r = utf8.RuneError
		}

		n, res, ok := e.writeRune(dst[nDst:], r, replace)
		if res != encOK {
			if res == encUnmappable {
				return nDst, nSrc, Unmappable, had
			}
			return nDst, nSrc, OutputFull, had
		}
		nDst += n
		nSrc += size
		had = had || !ok
	}
}

// EncodeFromUTF16 encodes into dst, substituting a decimal numeric character
// reference (&#NNNN;) for every scalar the target cannot represent. An
// unpaired surrogate counts as one U+FFFD; splitting a surrogate pair across
// two input buffers therefore loses the pair. dst must be at least
// MinEncodeBufferLength bytes.
func (e *Encoder) EncodeFromUTF16(dst []byte, src []uint16, last bool) (nDst, nSrc int, status Status, hadUnmappables bool) {
	return e.encodeFromUTF16(dst, src, last, true)
}

// EncodeFromUTF16WithoutReplacement encodes into dst, stopping at the first
// scalar the target cannot represent with its input units left unconsumed.
// dst must be at least MinEncodeBufferLength bytes.
func (e *Encoder) EncodeFromUTF16WithoutReplacement(dst []byte, src []uint16, last bool) (nDst, nSrc int, status Status) {
	nDst, nSrc, status, _ = e.encodeFromUTF16(dst, src, last, false)
	return nDst, nSrc, status
}

func (e *Encoder) encodeFromUTF16(dst []byte, src []uint16, last, replace bool) (nDst, nSrc int, _ Status, had bool) {
	e.checkCall(dst)

	for {
		if nSrc == len(src) {
			return e.finishStream(dst, nDst, nSrc, last, had)
		}

		r := rune(src[nSrc])
		size := 1
		switch {
		case r >= 0xD800 && r <= 0xDBFF:
			if nSrc+1 < len(src) && src[nSrc+1] >= 0xDC00 && src[nSrc+1] <= 0xDFFF {
				r = 0x10000 + (r-0xD800)<<10 + rune(src[nSrc+1]-0xDC00)
				size = 2
			} else {
				r = utf8.RuneError
			}
		case r >= 0xDC00 && r <= 0xDFFF:
			r = utf8.RuneError
		}

		n, res, ok := e.writeRune(dst[nDst:], r, replace)
		if res != encOK {
			if res == encUnmappable {
				return nDst, nSrc, Unmappable, had
			}
			return nDst, nSrc, OutputFull, had
		}
		nDst += n
		nSrc += size
		had = had || !ok
	}
}

// writeRune encodes one scalar, falling back to a numeric character reference
// when replace is set and the target has no mapping. ok is false when the
// fallback was taken; res is encUnmappable only with replace unset.
func (e *Encoder) writeRune(dst []byte, r rune, replace bool) (n int, res encodeResult, ok bool) {
	n, res = e.codec.encodeRune(dst, r)
	if res != encUnmappable {
		return n, res, true
	}
	if !replace {
		return 0, encUnmappable, true
	}
	var buf [13]byte
	ncr := appendNCR(buf[:0], r)
	n, wrote := e.codec.encodeASCII(dst, ncr)
	if !wrote {
		return 0, encSmallDst, false
	}
	return n, encOK, false
}

func appendNCR(buf []byte, r rune) []byte {
	buf = append(buf, '&', '#')
	buf = strconv.AppendInt(buf, int64(r), 10)
	return append(buf, ';')
}

func (e *Encoder) checkCall(dst []byte) {
	if len(dst) < MinEncodeBufferLength {
		panic("charconv: encode output buffer shorter than MinEncodeBufferLength")
	}
	if e.finished {
		panic("charconv: Encoder used after the final call")
	}
}

func (e *Encoder) finishStream(dst []byte, nDst, nSrc int, last bool, had bool) (int, int, Status, bool) {
	if !last {
		return nDst, nSrc, InputExhausted, had
	}
	n, ok := e.codec.finish(dst[nDst:])
	if !ok {
		return nDst, nSrc, OutputFull, had
	}
	nDst += n
	e.finished = true
	return nDst, nSrc, InputExhausted, had
}
