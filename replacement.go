package charconv

// replacementDecoder fails the entire stream: the first byte is reported as a
// single malformed sequence and everything after it is consumed silently.
// Used for labels that historically allowed cross-encoding attacks.
type replacementDecoder struct {
	emitted bool
}

func newReplacementDecoder() decodeMachine { return &replacementDecoder{} }

func (r *replacementDecoder) reset() { r.emitted = false }
func (r *replacementDecoder) pendingBytes() int { return 0 }
func (r *replacementDecoder) asciiValidUpTo(src []byte) int { return 0 }

func (r *replacementDecoder) decodeNext(src []byte, last bool) (rune, int, int, stepResult) {
	if len(src) == 0 {
		return 0, 0, 0, stepUnderflow
	}
	if !r.emitted {
		r.emitted = true
		return 0, 1, 1, stepMalformed
	}
	return 0, len(src), 0, stepUnderflow
}
