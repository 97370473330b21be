package charconv

// utf16Decoder decodes UTF-16LE or UTF-16BE incrementally. An odd trailing
// byte and an unpaired lead surrogate are both held as pending state across
// calls; unit lookahead that proves a lead unpaired is kept in pendingUnit so
// its bytes are never read twice.
type utf16Decoder struct {
	big bool

	haveHalf bool
	half     byte

	lead      uint16
	leadLocal int // src bytes of lead consumed in the current call

	havePendingUnit bool
	pendingUnit     uint16
}

func newUTF16Decoder(big bool) func() decodeMachine {
	return func() decodeMachine { return &utf16Decoder{big: big} }
}

func (u *utf16Decoder) reset() {
	u.haveHalf = false
	u.lead = 0
	u.havePendingUnit = false
}

func (u *utf16Decoder) pendingBytes() int {
	n := 0
	if u.haveHalf {
		n++
	}
	if u.lead != 0 {
		n += 2
	}
	if u.havePendingUnit {
		n += 2
	}
	return n
}

func (u *utf16Decoder) asciiValidUpTo(src []byte) int { return 0 }

func (u *utf16Decoder) unit(hi, lo byte) uint16 {
	if u.big {
		return uint16(hi)<<8 | uint16(lo)
	}
	return uint16(lo)<<8 | uint16(hi)
}

func (u *utf16Decoder) decodeNext(src []byte, last bool) (rune, int, int, stepResult) {
	i := 0
	u.leadLocal = 0
	for {
		var unit uint16
		unitBytes := 0 // src bytes the unit was read from in this call
		switch {
		case u.havePendingUnit:
			unit = u.pendingUnit
			u.havePendingUnit = false
		case u.haveHalf && i < len(src):
			unit = u.unit(u.half, src[i])
			u.haveHalf = false
			unitBytes = 1
			i++
		case i+1 < len(src):
			unit = u.unit(src[i], src[i+1])
			unitBytes = 2
			i += 2
		case i < len(src):
			u.half = src[i]
			u.haveHalf = true
			i++
			continue
		default:
			if last && (u.lead != 0 || u.haveHalf) {
				// One error for whatever dangles at the end of the stream.
				u.lead = 0
				u.haveHalf = false
				return 0, i, i, stepMalformed
			}
			return 0, i, 0, stepUnderflow
		}

		if u.lead != 0 {
			if unit >= 0xDC00 && unit <= 0xDFFF {
				r := 0x10000 + rune(u.lead-0xD800)<<10 + rune(unit-0xDC00)
				u.lead = 0
				return r, i, 0, stepScalar
			}
			// Unpaired lead. The unit that proved it is re-examined on the
			// next step: rewound in src when it came from src alone, kept in
			// pendingUnit when it straddled a call boundary.
			n := u.leadLocal
			rewind := 0
			if u.leadLocal == 2 {
				rewind = 2
			}
			if unitBytes == 1 {
				u.pendingUnit = unit
				u.havePendingUnit = true
				n += unitBytes
				rewind = 0
			} else {
				i -= unitBytes
			}
			u.lead = 0
			return 0, n, rewind, stepMalformed
		}
		if unit >= 0xD800 && unit <= 0xDBFF {
			u.lead = unit
			u.leadLocal = unitBytes
			continue
		}
		if unit >= 0xDC00 && unit <= 0xDFFF {
			// Lone trail surrogate.
			if unitBytes == 2 {
				return 0, i, 2, stepMalformed
			}
			return 0, i, 0, stepMalformed
		}
		return rune(unit), i, 0, stepScalar
	}
}
