package charconv

// JIS0208 maps between JIS X 0208 pointer values (row-1)*94+(cell-1) and
// Unicode scalar values. Both directions return a negative value for an
// unmapped input.
type JIS0208 interface {
	Rune(pointer int) rune
	Pointer(r rune) int
}

// jis0208Index backs the ISO-2022-JP double-byte mapping. The built-in index
// covers the algorithmic rows (fullwidth alphanumerics, hiragana, katakana)
// plus core punctuation; embedders with full JIS X 0208 data replace it.
var jis0208Index JIS0208 = builtinJIS0208{}

// SetJIS0208 installs a replacement JIS X 0208 index. Call it during process
// initialization, before any ISO-2022-JP conversion starts.
func SetJIS0208(t JIS0208) { jis0208Index = t }

// jisRow1 is the known part of JIS X 0208 row 1, keyed by cell-1.
var jisRow1 = map[int]rune{
	0: 0x3000, 1: 0x3001, 2: 0x3002, 3: 0xFF0C, 4: 0xFF0E,
	5: 0x30FB, 6: 0xFF1A, 7: 0xFF1B, 8: 0xFF1F, 9: 0xFF01,
	10: 0x309B, 11: 0x309C, 27: 0x30FC, 28: 0x2015, 60: 0x2212,
}

var jisRow1Reverse = func() map[rune]int {
	m := make(map[rune]int, len(jisRow1))
	for cell, r := range jisRow1 {
		m[r] = cell
	}
	return m
}()

type builtinJIS0208 struct{}

func (builtinJIS0208) Rune(pointer int) rune {
	if pointer < 0 || pointer >= 94*94 {
		return -1
	}
	row := pointer/94 + 1
	cell := pointer % 94
	switch row {
	case 1:
		if r, ok := jisRow1[cell]; ok {
			return r
		}
	case 3:
		b := rune(0x21 + cell)
		if b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' {
			return 0xFEE0 + b
		}
	case 4:
		if cell < 83 {
			return 0x3041 + rune(cell)
		}
	case 5:
		if cell < 86 {
			return 0x30A1 + rune(cell)
		}
	}
	return -1
}

func (builtinJIS0208) Pointer(r rune) int {
	switch {
	case r >= 0x3041 && r <= 0x3093:
		return 3*94 + int(r-0x3041)
	case r >= 0x30A1 && r <= 0x30F6:
		return 4*94 + int(r-0x30A1)
	case r >= 0xFF10 && r <= 0xFF19, r >= 0xFF21 && r <= 0xFF3A, r >= 0xFF41 && r <= 0xFF5A:
		return 2*94 + int(r-0xFEE0) - 0x21
	case r == 0xFF0D:
		// Fullwidth hyphen-minus shares the minus-sign cell.
		return 60
	}
	if cell, ok := jisRow1Reverse[r]; ok {
		return cell
	}
	return -1
}

// halfwidthKatakana maps U+FF61..U+FF9F to the fullwidth forms the encoder
// substitutes before the JIS X 0208 lookup.
var halfwidthKatakana = [63]rune{
	0x3002, 0x300C, 0x300D, 0x3001, 0x30FB, 0x30F2, 0x30A1,
	0x30A3, 0x30A5, 0x30A7, 0x30A9, 0x30E3, 0x30E5, 0x30E7,
	0x30C3, 0x30FC, 0x30A2, 0x30A4, 0x30A6, 0x30A8, 0x30AA,
	0x30AB, 0x30AD, 0x30AF, 0x30B1, 0x30B3, 0x30B5, 0x30B7,
	0x30B9, 0x30BB, 0x30BD, 0x30BF, 0x30C1, 0x30C4, 0x30C6,
	0x30C8, 0x30CA, 0x30CB, 0x30CC, 0x30CD, 0x30CE, 0x30CF,
	0x30D2, 0x30D5, 0x30D8, 0x30DB, 0x30DE, 0x30DF, 0x30E0,
	0x30E1, 0x30E2, 0x30E4, 0x30E6, 0x30E8, 0x30E9, 0x30EA,
	0x30EB, 0x30EC, 0x30ED, 0x30EF, 0x30F3, 0x309B, 0x309C,
}

type isoState int

const (
	isoASCII isoState = iota
	isoRoman
	isoKatakana
	isoLead
	isoTrail
	isoEscStart
	isoEsc
)

// iso2022jpDecoder is the escape-sequence state machine. Escape and lead
// bytes are absorbed into the state, so they can pend across call
// boundaries; outputFlag guards against two escapes with no character
// between them. When an escape sequence turns out invalid after its second
// byte crossed a call boundary, that byte is held in pend and replayed as
// ordinary input.
type iso2022jpDecoder struct {
	state      isoState
	output     isoState // state to resume after an escape (or its failure)
	lead       byte
	escByte    byte // saved second escape byte, 0x24 or 0x28
	pend       byte
	havePend   bool
	outputFlag bool
}

func newISO2022JPDecoder() decodeMachine { return &iso2022jpDecoder{} }

func (d *iso2022jpDecoder) reset() {
	*d = iso2022jpDecoder{}
}

func (d *iso2022jpDecoder) pendingBytes() int {
	n := 0
	if d.havePend {
		n++
	}
	switch d.state {
	case isoTrail, isoEscStart:
		n++
	case isoEsc:
		n += 2
	}
	return n
}

func (d *iso2022jpDecoder) asciiValidUpTo(src []byte) int {
	if d.state != isoASCII || d.havePend {
		return 0
	}
	n := ISO2022JPASCIIValidUpTo(src)
	if n > 0 {
		d.outputFlag = false
	}
	return n
}

func (d *iso2022jpDecoder) emit(r rune, n int) (rune, int, int, stepResult) {
	d.outputFlag = false
	return r, n, 0, stepScalar
}

func (d *iso2022jpDecoder) decodeNext(src []byte, last bool) (rune, int, int, stepResult) {
	i := 0
	escLocal := 0  // 1 when the current escape's ESC was consumed from this src
	leadLocal := 0 // 1 when the pending lead byte came from this src
	for {
		var b byte
		adv := 0 // src bytes b occupies; 0 for a replayed pend byte
		switch {
		case d.havePend:
			// A replayed byte is never ESC, SO, SI or non-ASCII, so it can
			// only take the ordinary paths below.
			b = d.pend
			d.havePend = false
		case i < len(src):
			b = src[i]
			adv = 1
		default:
			if last && d.pendingBytes() > 0 {
				// Dangling escape or lead at end of stream.
				d.state = isoASCII
				d.output = isoASCII
				d.lead = 0
				return 0, i, 0, stepMalformed
			}
			return 0, i, 0, stepUnderflow
		}

		switch d.state {
		case isoASCII, isoRoman:
			if b == 0x1B {
				d.state = isoEscStart
				escLocal = 1
				i++
				continue
			}
			if b == 0x0E || b == 0x0F || b >= 0x80 {
				i++
				return 0, i, 1, stepMalformed
			}
			i += adv
			if d.state == isoRoman {
				if b == 0x5C {
					return d.emit(0x00A5, i)
				}
				if b == 0x7E {
					return d.emit(0x203E, i)
				}
			}
			return d.emit(rune(b), i)

		case isoKatakana:
			if b == 0x1B {
				d.state = isoEscStart
				escLocal = 1
				i++
				continue
			}
			i += adv
			if b >= 0x21 && b <= 0x5F {
				return d.emit(0xFF61+rune(b)-0x21, i)
			}
			return 0, i, adv, stepMalformed

		case isoLead:
			if b == 0x1B {
				d.state = isoEscStart
				escLocal = 1
				i++
				continue
			}
			if b >= 0x21 && b <= 0x7E {
				d.lead = b
				d.state = isoTrail
				leadLocal = adv
				i += adv
				continue
			}
			i++
			return 0, i, 1, stepMalformed

		case isoTrail:
			if b == 0x1B {
				// The pending lead is the error; the escape continues.
				d.state = isoEscStart
				d.output = isoLead
				i++
				return 0, i, 0, stepMalformed
			}
			d.state = isoLead
			i++
			if b >= 0x21 && b <= 0x7E {
				pointer := int(d.lead-0x21)*94 + int(b-0x21)
				if r := jis0208Index.Rune(pointer); r >= 0 {
					return d.emit(r, i)
				}
			}
			if leadLocal == 1 {
				return 0, i, 2, stepMalformed
			}
			return 0, i, 0, stepMalformed

		case isoEscStart:
			if b == 0x24 || b == 0x28 {
				d.escByte = b
				d.state = isoEsc
				i++
				continue
			}
			// Not an escape after all: the ESC alone is the error and b is
			// re-examined in the prior state.
			d.state = d.output
			d.outputFlag = false
			return 0, i, escLocal, stepMalformed

		case isoEsc:
			next := isoState(-1)
			if d.escByte == 0x28 {
				switch b {
				case 'B':
					next = isoASCII
				case 'J':
					next = isoRoman
				case 'I':
					next = isoKatakana
				}
			} else if b == '@' || b == 'B' {
				next = isoLead
			}
			if next < 0 {
				// Unknown sequence: ESC is the error; the saved byte and b
				// are re-examined as ordinary input.
				d.state = d.output
				d.outputFlag = false
				if i > 0 && src[i-1] == d.escByte {
					i--
				} else {
					d.pend = d.escByte
					d.havePend = true
				}
				return 0, i, escLocal, stepMalformed
			}
			i++
			d.state = next
			d.output = next
			if d.outputFlag {
				// Escape immediately after escape.
				return 0, i, 0, stepMalformed
			}
			d.outputFlag = true
			continue
		}
	}
}

type isoEncState int

const (
	isoEncASCII isoEncState = iota
	isoEncRoman
	isoEncJis
)

var (
	escASCII = []byte{0x1B, '(', 'B'}
	escRoman = []byte{0x1B, '(', 'J'}
	escJis   = []byte{0x1B, '$', 'B'}
)

// iso2022jpEncoder carries the shift state across calls; finish returns the
// stream to ASCII so the whole output is valid on its own.
type iso2022jpEncoder struct {
	state isoEncState
}

func newISO2022JPEncoder() encodeMachine { return &iso2022jpEncoder{} }

func (e *iso2022jpEncoder) shift(dst []byte, to isoEncState, esc []byte, need int) (int, bool) {
	if e.state == to {
		if need > len(dst) {
			return 0, false
		}
		return 0, true
	}
	if len(esc)+need > len(dst) {
		return 0, false
	}
	copy(dst, esc)
	e.state = to
	return len(esc), true
}

func (e *iso2022jpEncoder) encodeRune(dst []byte, r rune) (int, encodeResult) {
	if r == 0x0E || r == 0x0F || r == 0x1B {
		return 0, encUnmappable
	}
	if r < 0x80 {
		// Roman covers ASCII except backslash and tilde.
		if e.state == isoEncJis || e.state == isoEncRoman && (r == 0x5C || r == 0x7E) {
			n, ok := e.shift(dst, isoEncASCII, escASCII, 1)
			if !ok {
				return 0, encSmallDst
			}
			dst[n] = byte(r)
			return n + 1, encOK
		}
		if len(dst) < 1 {
			return 0, encSmallDst
		}
		dst[0] = byte(r)
		return 1, encOK
	}
	if r == 0x00A5 || r == 0x203E {
		n, ok := e.shift(dst, isoEncRoman, escRoman, 1)
		if !ok {
			return 0, encSmallDst
		}
		if r == 0x00A5 {
			dst[n] = 0x5C
		} else {
			dst[n] = 0x7E
		}
		return n + 1, encOK
	}
	if r == 0x2212 {
		r = 0xFF0D
	}
	if r >= 0xFF61 && r <= 0xFF9F {
		r = halfwidthKatakana[r-0xFF61]
	}
	pointer := jis0208Index.Pointer(r)
	if pointer < 0 {
		return 0, encUnmappable
	}
	n, ok := e.shift(dst, isoEncJis, escJis, 2)
	if !ok {
		return 0, encSmallDst
	}
	dst[n] = byte(pointer/94) + 0x21
	dst[n+1] = byte(pointer%94) + 0x21
	return n + 2, encOK
}

func (e *iso2022jpEncoder) encodeASCII(dst []byte, ascii []byte) (int, bool) {
	n, ok := e.shift(dst, isoEncASCII, escASCII, len(ascii))
	if !ok {
		return 0, false
	}
	return n + copy(dst[n:], ascii), true
}

func (e *iso2022jpEncoder) finish(dst []byte) (int, bool) {
	if e.state == isoEncASCII {
		return 0, true
	}
	if len(dst) < len(escASCII) {
		return 0, false
	}
	copy(dst, escASCII)
	e.state = isoEncASCII
	return len(escASCII), true
}

func (e *iso2022jpEncoder) asciiValidUpTo(src []byte) int { return ISO2022JPASCIIValidUpTo(src) }

func (e *iso2022jpEncoder) maxPerRune() int { return 5 }
func (e *iso2022jpEncoder) maxShift() int { return 3 }
func (e *iso2022jpEncoder) perByte8() int { return 4 }
func (e *iso2022jpEncoder) perUnit16() int { return 5 }
