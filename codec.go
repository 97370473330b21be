package charconv

// stepResult is the outcome of a single decode step.
type stepResult int

const (
	stepScalar    stepResult = iota // one scalar value decoded
	stepUnderflow                   // src exhausted, any trailing partial sequence buffered
	stepMalformed                   // invalid sequence; n counts the in-error bytes present in src
)

// decodeMachine is the per-encoding decode state machine. It steps one scalar
// value at a time and buffers partial multi-byte sequences internally so that
// a sequence may span any number of calls.
//
// decodeNext consumes at most one scalar's worth of bytes from src and
// reports how many src bytes it used. With last set it must not leave
// anything pending: a dangling partial sequence becomes stepMalformed.
//
// On stepMalformed, n counts the src bytes belonging to the invalid sequence
// (plus any lookahead absorbed into machine state), and rewind ≤ n is how
// many trailing bytes of those can safely be left unconsumed and
// re-presented. The engine advances by n in replacement mode and by n-rewind
// otherwise. In-error bytes absorbed by earlier calls are already gone and
// appear in neither count.
type decodeMachine interface {
	decodeNext(src []byte, last bool) (r rune, n, rewind int, res stepResult)

	// asciiValidUpTo reports the length of a prefix of src that decodes 1:1
	// as ASCII in the current state, or 0 when no fast path applies. The
	// engine copies at least one byte of any non-zero run it is given.
	asciiValidUpTo(src []byte) int

	// pendingBytes is the number of bytes buffered from previous calls.
	pendingBytes() int

	reset()
}

// encodeResult is the outcome of encoding a single scalar value.
type encodeResult int

const (
	encOK         encodeResult = iota
	encUnmappable              // no representation in the target encoding
	encSmallDst                // dst too small for the encoded form plus any shift
)

// encodeMachine is the per-encoding encode state machine. Stateful targets
// (ISO-2022-JP) emit shift sequences as part of encodeRune and return to
// their initial state in finish.
type encodeMachine interface {
	// encodeRune writes the encoded form of r, including any state shift,
	// and reports the bytes written.
	encodeRune(dst []byte, r rune) (n int, res encodeResult)

	// encodeASCII writes a run of ASCII bytes, shifting to the ASCII state
	// first if needed. ok is false when dst is too small.
	encodeASCII(dst []byte, s []byte) (n int, ok bool)

	// finish flushes the terminal shift state. ok is false when dst is too
	// small.
	finish(dst []byte) (n int, ok bool)

	// asciiValidUpTo reports the length of an input-text prefix that
	// encodeASCII can take verbatim.
	asciiValidUpTo(src []byte) int

	// maxPerRune is the worst-case output for a single scalar, shifts
	// included.
	maxPerRune() int

	// maxShift is the worst-case length of a shift sequence alone.
	maxShift() int

	// perByte8 and perUnit16 are worst-case output ratios per UTF-8 input
	// byte and per UTF-16 input unit, used by the capacity formulas.
	perByte8() int
	perUnit16() int
}
