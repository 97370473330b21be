package charconv

import "unicode/utf8"

// ASCIIValidUpTo returns the index of the first byte that is not ASCII, or
// len(b) if every byte is.
func ASCIIValidUpTo(b []byte) int {
	for i, c := range b {
		if c >= 0x80 {
			return i
		}
	}
	return len(b)
}

// UTF8ValidUpTo returns the index of the first byte that makes b invalid
// UTF-8, or len(b) if the whole buffer is valid. A truncated sequence at the
// end counts as invalid at its first byte.
func UTF8ValidUpTo(b []byte) int {
	i := 0
	for i < len(b) {
		if b[i] < 0x80 {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return i
}

// ISO2022JPASCIIValidUpTo returns the index of the first byte that could not
// pass through an ISO-2022-JP stream in the ASCII state unchanged (ESC, SO,
// SI or a non-ASCII byte), or len(b) if none does.
func ISO2022JPASCIIValidUpTo(b []byte) int {
	for i, c := range b {
		if c >= 0x80 || c == 0x0E || c == 0x0F || c == 0x1B {
			return i
		}
	}
	return len(b)
}
