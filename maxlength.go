package charconv

// Minimum output-buffer sizes below which a conversion call cannot make
// forward progress. Calls with a smaller buffer panic instead of looping.
const (
	MinDecodeToUTF8BufferLength  = 4
	MinDecodeToUTF16BufferLength = 2
	MinEncodeBufferLength        = 16
)

// pendingTotal counts input bytes already absorbed but not yet converted:
// codec-internal partial sequences, unreplayed BOM-candidate bytes, and the
// BOM buffer itself while sniffing.
func (d *Decoder) pendingTotal() int {
	return d.codec.pendingBytes() + (d.replayLen - d.replayOff) + d.bomLen
}

// MaxUTF8BufferLength returns a dst size guaranteeing that decoding
// byteLength further source bytes with DecodeToUTF8 never reports OutputFull.
func (d *Decoder) MaxUTF8BufferLength(byteLength int) int {
	n := 3*(byteLength+d.pendingTotal()) + 16
	if n < MinDecodeToUTF8BufferLength {
		n = MinDecodeToUTF8BufferLength
	}
	return n
}

// MaxUTF8BufferLengthWithoutReplacement is MaxUTF8BufferLength for the
// without-replacement variant.
func (d *Decoder) MaxUTF8BufferLengthWithoutReplacement(byteLength int) int {
	return d.MaxUTF8BufferLength(byteLength)
}

// MaxUTF16BufferLength returns a dst size in units guaranteeing that decoding
// byteLength further source bytes with DecodeToUTF16 never reports
// OutputFull. No supported encoding produces more than one UTF-16 unit per
// source byte.
func (d *Decoder) MaxUTF16BufferLength(byteLength int) int {
	n := byteLength + d.pendingTotal() + 8
	if n < MinDecodeToUTF16BufferLength {
		n = MinDecodeToUTF16BufferLength
	}
	return n
}

// MaxUTF16BufferLengthWithoutReplacement is MaxUTF16BufferLength for the
// without-replacement variant.
func (d *Decoder) MaxUTF16BufferLengthWithoutReplacement(byteLength int) int {
	return d.MaxUTF16BufferLength(byteLength)
}

// MaxBufferLengthFromUTF8WithoutReplacement returns a dst size guaranteeing
// that encoding byteLength further UTF-8 bytes without replacement never
// reports OutputFull.
func (e *Encoder) MaxBufferLengthFromUTF8WithoutReplacement(byteLength int) int {
	return clampEncode(e.codec.perByte8()*byteLength + e.codec.maxShift())
}

// MaxBufferLengthFromUTF16WithoutReplacement returns a dst size guaranteeing
// that encoding unitLength further UTF-16 units without replacement never
// reports OutputFull.
func (e *Encoder) MaxBufferLengthFromUTF16WithoutReplacement(unitLength int) int {
	return clampEncode(e.codec.perUnit16()*unitLength + e.codec.maxShift())
}

// MaxBufferLengthFromUTF8IfNoUnmappables returns a cheap dst size estimate
// assuming every scalar is mappable. It is advisory, not an upper bound:
// numeric character references and repeated shift sequences can exceed it,
// so callers must be prepared to grow the buffer and retry on OutputFull.
func (e *Encoder) MaxBufferLengthFromUTF8IfNoUnmappables(byteLength int) int {
	return clampEncode(byteLength + e.codec.maxShift())
}

// MaxBufferLengthFromUTF16IfNoUnmappables is the advisory estimate for UTF-16
// input, with the same grow-and-retry caveat.
func (e *Encoder) MaxBufferLengthFromUTF16IfNoUnmappables(unitLength int) int {
	return clampEncode(2*unitLength + e.codec.maxShift())
}

func clampEncode(n int) int {
	n += 16
	if n < MinEncodeBufferLength {
		n = MinEncodeBufferLength
	}
	return n
}
