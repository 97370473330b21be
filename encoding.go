package charconv

import "bytes"

// Encoding identifies one encoding from the WHATWG Encoding Standard. The
// package-level singletons are the only instances; compare by pointer.
// Encodings are immutable and safe for concurrent use by any number of
// decoders and encoders.
type Encoding struct {
	name             string
	bom              []byte
	asciiCompatible  bool
	canEncodeAll     bool
	newDecodeMachine func() decodeMachine
	newEncodeMachine func() encodeMachine
}

var (
	// UTF8 is the UTF-8 encoding.
	UTF8 = &Encoding{
		name:             "UTF-8",
		bom:              utf8BOM,
		asciiCompatible:  true,
		canEncodeAll:     true,
		newDecodeMachine: newUTF8Decoder,
		newEncodeMachine: newUTF8Encoder,
	}

	// UTF16LE is the UTF-16LE encoding. It is decode-only; its output
	// encoding is UTF-8.
	UTF16LE = &Encoding{
		name:             "UTF-16LE",
		bom:              utf16leBOM,
		newDecodeMachine: newUTF16Decoder(false),
	}

	// UTF16BE is the UTF-16BE encoding. It is decode-only; its output
	// encoding is UTF-8.
	UTF16BE = &Encoding{
		name:             "UTF-16BE",
		bom:              utf16beBOM,
		newDecodeMachine: newUTF16Decoder(true),
	}

	// Replacement is the replacement encoding: it decodes any non-empty
	// stream to a single U+FFFD. Its output encoding is UTF-8.
	Replacement = &Encoding{
		name:             "replacement",
		newDecodeMachine: newReplacementDecoder,
	}

	// Windows1252 is the windows-1252 encoding, the Standard's superset of
	// ISO 8859-1 and US-ASCII.
	Windows1252 = &Encoding{
		name:             "windows-1252",
		asciiCompatible:  true,
		newDecodeMachine: newSingleByteDecoder(&windows1252Table),
		newEncodeMachine: newSingleByteEncoder(windows1252Reverse),
	}

	// XUserDefined is the x-user-defined encoding, mapping the high half onto
	// the U+F780-U+F7FF private-use range.
	XUserDefined = &Encoding{
		name:             "x-user-defined",
		asciiCompatible:  true,
		newDecodeMachine: newUserDefinedDecoder,
		newEncodeMachine: newUserDefinedEncoder,
	}

	// ISO2022JP is the ISO-2022-JP encoding, the escape-sequence-stateful
	// member of the Standard.
	ISO2022JP = &Encoding{
		name:             "ISO-2022-JP",
		newDecodeMachine: newISO2022JPDecoder,
		newEncodeMachine: newISO2022JPEncoder,
	}
)

// Name returns the canonical name from the Encoding Standard.
func (e *Encoding) Name() string { return e.name }

// OutputEncoding returns the encoding an Encoder for e actually produces:
// UTF-8 for the decode-only encodings (UTF-16LE, UTF-16BE, replacement),
// e itself otherwise.
func (e *Encoding) OutputEncoding() *Encoding {
	if e.newEncodeMachine == nil {
		return UTF8
	}
	return e
}

// IsASCIICompatible reports whether bytes 0x00-0x7F decode to the matching
// code points in this encoding.
func (e *Encoding) IsASCIICompatible() bool { return e.asciiCompatible }

// CanEncodeEverything reports whether every Unicode scalar value has a
// representation in this encoding's output encoding.
func (e *Encoding) CanEncodeEverything() bool { return e.OutputEncoding().canEncodeAll }

// NewDecoder returns a Decoder with full BOM sniffing: a UTF-8 or UTF-16
// BOM at the start of the stream overrides e and is removed.
func (e *Encoding) NewDecoder() *Decoder { return newDecoder(e, bomSniff) }

// NewDecoderWithBOMRemoval returns a Decoder that removes a leading BOM
// matching e's own BOM and treats any other bytes as ordinary input.
func (e *Encoding) NewDecoderWithBOMRemoval() *Decoder { return newDecoder(e, bomRemove) }

// NewDecoderWithoutBOMHandling returns a Decoder that treats a leading BOM
// as ordinary input.
func (e *Encoding) NewDecoderWithoutBOMHandling() *Decoder { return newDecoder(e, bomOff) }

// NewEncoder returns an Encoder for e's output encoding.
func (e *Encoding) NewEncoder() *Encoder { return newEncoder(e.OutputEncoding()) }

// ForBOM examines the start of data for a byte order mark and returns the
// matching encoding with the BOM length, or (nil, 0) when none is present.
func ForBOM(data []byte) (*Encoding, int) {
	if bytes.HasPrefix(data, utf8BOM) {
		return UTF8, 3
	}
	if bytes.HasPrefix(data, utf16leBOM) {
		return UTF16LE, 2
	}
	if bytes.HasPrefix(data, utf16beBOM) {
		return UTF16BE, 2
	}
	return nil, 0
}

// Decode converts src to a string with full BOM sniffing and replacement of
// malformed sequences. It returns the encoding actually used, which differs
// from e when a BOM overrode it, and whether any replacement occurred.
func (e *Encoding) Decode(src []byte) (string, *Encoding, bool) {
	d := e.NewDecoder()
	s, had := runDecode(d, src)
	return s, d.Encoding(), had
}

// DecodeWithBOMRemoval converts src to a string, removing a leading BOM
// matching e's own BOM and replacing malformed sequences.
func (e *Encoding) DecodeWithBOMRemoval(src []byte) (string, bool) {
	return runDecode(e.NewDecoderWithBOMRemoval(), src)
}

// DecodeWithoutBOMHandling converts src to a string, treating any leading
// BOM as ordinary input and replacing malformed sequences.
func (e *Encoding) DecodeWithoutBOMHandling(src []byte) (string, bool) {
	return runDecode(e.NewDecoderWithoutBOMHandling(), src)
}

// DecodeWithoutBOMHandlingAndWithoutReplacement converts src to a string,
// returning ("", false) if src contains a malformed sequence.
func (e *Encoding) DecodeWithoutBOMHandlingAndWithoutReplacement(src []byte) (string, bool) {
	d := e.NewDecoderWithoutBOMHandling()
	dst := make([]byte, d.MaxUTF8BufferLengthWithoutReplacement(len(src)))
	var out []byte
	nSrc := 0
	for {
		nd, ns, status := d.DecodeToUTF8WithoutReplacement(dst, src[nSrc:], true)
		out = append(out, dst[:nd]...)
		nSrc += ns
		switch status {
		case InputExhausted:
			return string(out), true
		case Malformed:
			return "", false
		}
	}
}

func runDecode(d *Decoder, src []byte) (string, bool) {
	dst := make([]byte, d.MaxUTF8BufferLength(len(src)))
	var out []byte
	had := false
	nSrc := 0
	for {
		nd, ns, status, h := d.DecodeToUTF8(dst, src[nSrc:], true)
		out = append(out, dst[:nd]...)
		nSrc += ns
		had = had || h
		if status == InputExhausted {
			return string(out), had
		}
	}
}

// Encode converts s into e's output encoding, substituting numeric character
// references for unmappable scalars. It returns the encoding actually used
// and whether any substitution occurred. For a UTF-8 output encoding the
// bytes of s are returned as-is.
func (e *Encoding) Encode(s string) ([]byte, *Encoding, bool) {
	out := e.OutputEncoding()
	if out == UTF8 {
		return []byte(s), out, false
	}
	enc := newEncoder(out)
	dst := make([]byte, enc.MaxBufferLengthFromUTF8IfNoUnmappables(len(s)))
	var res []byte
	had := false
	src := []byte(s)
	nSrc := 0
	for {
		nd, ns, status, h := enc.EncodeFromUTF8(dst, src[nSrc:], true)
		res = append(res, dst[:nd]...)
		nSrc += ns
		had = had || h
		if status == InputExhausted {
			return res, out, had
		}
		// OutputFull: the if-no-unmappables estimate is advisory.
	}
}
