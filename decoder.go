package charconv

import (
	"bytes"
	"unicode/utf8"
)

type bomHandling int

const (
	bomSniff  bomHandling = iota // up to 3 bytes buffered, identity may morph
	bomRemove                    // strip this encoding's own BOM only
	bomOff                       // BOM bytes are ordinary input
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16leBOM = []byte{0xFF, 0xFE}
	utf16beBOM = []byte{0xFE, 0xFF}
)

// Decoder converts a byte stream in one encoding into UTF-8 or UTF-16
// incrementally. Feed successive buffers with last=false and exactly one
// final call with last=true; once that final call returns InputExhausted the
// Decoder must not be used again.
//
// A Decoder is owned by a single stream; it is not safe for concurrent use.
type Decoder struct {
	encoding  *Encoding
	requested *Encoding
	codec     decodeMachine
	bom       bomHandling

	sniffed bool
	bomLen  int
	bomBuf  [3]byte

	// Unmatched BOM-candidate bytes being fed back through the codec.
	replay    [3]byte
	replayLen int
	replayOff int

	finished bool
}

func newDecoder(e *Encoding, bom bomHandling) *Decoder {
	d := &Decoder{encoding: e, requested: e, codec: e.newDecodeMachine(), bom: bom}
	if bom == bomOff || bom == bomRemove && len(e.bom) == 0 {
		d.sniffed = true
	}
	return d
}

// Encoding returns the encoding this Decoder is decoding. For a BOM-sniffing
// Decoder it reports the requested encoding until a BOM settles the identity,
// which happens at most once per stream.
func (d *Decoder) Encoding() *Encoding { return d.encoding }

func (d *Decoder) reset() {
	d.encoding = d.requested
	d.codec = d.requested.newDecodeMachine()
	d.sniffed = d.bom == bomOff || d.bom == bomRemove && len(d.requested.bom) == 0
	d.bomLen = 0
	d.replayLen = 0
	d.replayOff = 0
	d.finished = false
}

// sniffBOM inspects the buffered BOM candidate. enc is non-nil when a BOM
// settled the identity, n is how many buffered bytes the BOM used, and
// undecided means another byte could still change the answer.
func sniffBOM(buf []byte) (enc *Encoding, n int, undecided bool) {
	if bomPrefix(buf, utf16leBOM) {
		if len(buf) >= 2 {
			return UTF16LE, 2, false
		}
		return nil, 0, true
	}
	if bomPrefix(buf, utf16beBOM) {
		if len(buf) >= 2 {
			return UTF16BE, 2, false
		}
		return nil, 0, true
	}
	if bomPrefix(buf, utf8BOM) {
		if len(buf) >= 3 {
			return UTF8, 3, false
		}
		return nil, 0, true
	}
	return nil, 0, false
}

func bomPrefix(buf, bom []byte) bool {
	n := len(buf)
	if n > len(bom) {
		n = len(bom)
	}
	return bytes.Equal(buf[:n], bom[:n])
}

// handleBOM runs the pre-codec phase, absorbing up to 3 bytes from src.
// It reports false when it still needs input that this call cannot supply.
func (d *Decoder) handleBOM(src []byte, nSrc *int, last bool) bool {
	for !d.sniffed {
		var enc *Encoding
		var n int
		var undecided bool
		if d.bom == bomSniff {
			enc, n, undecided = sniffBOM(d.bomBuf[:d.bomLen])
		} else {
			own := d.encoding.bom
			switch {
			case !bomPrefix(d.bomBuf[:d.bomLen], own):
				n = 0
			case d.bomLen >= len(own):
				n = len(own)
			default:
				undecided = true
			}
		}
		if undecided {
			if *nSrc < len(src) {
				d.bomBuf[d.bomLen] = src[*nSrc]
				d.bomLen++
				*nSrc++
				continue
			}
			if !last {
				return false
			}
			// End of stream inside a BOM prefix: stay with the requested
			// encoding and replay what was buffered.
			enc, n = nil, 0
		}
		if enc != nil {
			d.encoding = enc
			d.codec = enc.newDecodeMachine()
		}
		d.replayOff = 0
		d.replayLen = copy(d.replay[:], d.bomBuf[n:d.bomLen])
		d.bomLen = 0
		d.sniffed = true
	}
	return true
}

// DecodeToUTF8 decodes into dst, replacing malformed sequences with U+FFFD.
// The returned flag reports whether any replacement happened during this
// call. dst must be at least MinDecodeToUTF8BufferLength bytes.
func (d *Decoder) DecodeToUTF8(dst, src []byte, last bool) (nDst, nSrc int, status Status, hadReplacements bool) {
	return d.decodeToUTF8(dst, src, last, true)
}

// DecodeToUTF8WithoutReplacement decodes into dst, stopping at the first
// malformed sequence with its bytes left unconsumed. dst must be at least
// MinDecodeToUTF8BufferLength bytes.
func (d *Decoder) DecodeToUTF8WithoutReplacement(dst, src []byte, last bool) (nDst, nSrc int, status Status) {
	nDst, nSrc, status, _ = d.decodeToUTF8(dst, src, last, false)
	return nDst, nSrc, status
}

func (d *Decoder) decodeToUTF8(dst, src []byte, last, replace bool) (nDst, nSrc int, _ Status, had bool) {
	if len(dst) < MinDecodeToUTF8BufferLength {
		panic("charconv: decode output buffer shorter than MinDecodeToUTF8BufferLength")
	}
	if d.finished {
		panic("charconv: Decoder used after the final call")
	}
	if !d.handleBOM(src, &nSrc, last) {
		return nDst, nSrc, InputExhausted, had
	}

	for d.replayOff < d.replayLen {
		if len(dst)-nDst < utf8.UTFMax {
			return nDst, nSrc, OutputFull, had
		}
		r, n, _, res := d.codec.decodeNext(d.replay[d.replayOff:d.replayLen], false)
		d.replayOff += n
		switch res {
		case stepScalar:
			nDst += utf8.EncodeRune(dst[nDst:], r)
		case stepMalformed:
			// Replay bytes were consumed from the caller long ago; they can
			// only be skipped, never rewound.
			if !replace {
				return nDst, nSrc, Malformed, had
			}
			nDst += utf8.EncodeRune(dst[nDst:], utf8.RuneError)
			had = true
		}
		if res == stepUnderflow {
			break
		}
	}

	for {
		if free := len(dst) - nDst; free > 0 {
			if run := d.codec.asciiValidUpTo(src[nSrc:]); run > 0 {
				if run > free {
					run = free
				}
				copy(dst[nDst:], src[nSrc:nSrc+run])
				nDst += run
				nSrc += run
			}
		}
		if nSrc == len(src) && (!last || d.codec.pendingBytes() == 0) {
			if last {
				d.finished = true
			}
			return nDst, nSrc, InputExhausted, had
		}
		if len(dst)-nDst < utf8.UTFMax {
			return nDst, nSrc, OutputFull, had
		}
		r, n, rewind, res := d.codec.decodeNext(src[nSrc:], last)
		switch res {
		case stepScalar:
			nSrc += n
			nDst += utf8.EncodeRune(dst[nDst:], r)
		case stepUnderflow:
			nSrc += n
		case stepMalformed:
			if !replace {
				nSrc += n - rewind
				return nDst, nSrc, Malformed, had
			}
			nSrc += n
			nDst += utf8.EncodeRune(dst[nDst:], utf8.RuneError)
			had = true
		}
	}
}

// DecodeToUTF16 decodes into dst, replacing malformed sequences with U+FFFD.
// dst must be at least MinDecodeToUTF16BufferLength units.
func (d *Decoder) DecodeToUTF16(dst []uint16, src []byte, last bool) (nDst, nSrc int, status Status, hadReplacements bool) {
	return d.decodeToUTF16(dst, src, last, true)
}

// DecodeToUTF16WithoutReplacement decodes into dst, stopping at the first
// malformed sequence with its bytes left unconsumed. dst must be at least
// MinDecodeToUTF16BufferLength units.
func (d *Decoder) DecodeToUTF16WithoutReplacement(dst []uint16, src []byte, last bool) (nDst, nSrc int, status Status) {
	nDst, nSrc, status, _ = d.decodeToUTF16(dst, src, last, false)
	return nDst, nSrc, status
}

func (d *Decoder) decodeToUTF16(dst []uint16, src []byte, last, replace bool) (nDst, nSrc int, _ Status, had bool) {
	if len(dst) < MinDecodeToUTF16BufferLength {
		panic("charconv: decode output buffer shorter than MinDecodeToUTF16BufferLength")
	}
	if d.finished {
		panic("charconv: Decoder used after the final call")
	}
	if !d.handleBOM(src, &nSrc, last) {
		return nDst, nSrc, InputExhausted, had
	}

	for d.replayOff < d.replayLen {
		if len(dst)-nDst < 2 {
			return nDst, nSrc, OutputFull, had
		}
		r, n, _, res := d.codec.decodeNext(d.replay[d.replayOff:d.replayLen], false)
		d.replayOff += n
		switch res {
		case stepScalar:
			nDst += putUTF16(dst[nDst:], r)
		case stepMalformed:
			if !replace {
				return nDst, nSrc, Malformed, had
			}
			dst[nDst] = 0xFFFD
			nDst++
			had = true
		}
		if res == stepUnderflow {
			break
		}
	}

	for {
		if free := len(dst) - nDst; free > 0 {
			if run := d.codec.asciiValidUpTo(src[nSrc:]); run > 0 {
				if run > free {
					run = free
				}
				for i := 0; i < run; i++ {
					dst[nDst+i] = uint16(src[nSrc+i])
				}
				nDst += run
				nSrc += run
			}
		}
		if nSrc == len(src) && (!last || d.codec.pendingBytes() == 0) {
			if last {
				d.finished = true
			}
			return nDst, nSrc, InputExhausted, had
		}
		if len(dst)-nDst < 2 {
			return nDst, nSrc, OutputFull, had
		}
		r, n, rewind, res := d.codec.decodeNext(src[nSrc:], last)
		switch res {
		case stepScalar:
			nSrc += n
			nDst += putUTF16(dst[nDst:], r)
		case stepUnderflow:
			nSrc += n
		case stepMalformed:
			if !replace {
				nSrc += n - rewind
				return nDst, nSrc, Malformed, had
			}
			nSrc += n
			dst[nDst] = 0xFFFD
			nDst++
			had = true
		}
	}
}

func putUTF16(dst []uint16, r rune) int {
	if r <= 0xFFFF {
		dst[0] = uint16(r)
		return 1
	}
	r -= 0x10000
	dst[0] = 0xD800 + uint16(r>>10)
	dst[1] = 0xDC00 + uint16(r&0x3FF)
	return 2
}
