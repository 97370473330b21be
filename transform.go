package charconv

import (
	"io"

	"golang.org/x/text/transform"
)

// decodeTransformer adapts a Decoder to golang.org/x/text/transform so any
// encoding can sit behind an io.Reader.
type decodeTransformer struct {
	d *Decoder
}

func (t decodeTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if len(dst) < MinDecodeToUTF8BufferLength {
		return 0, 0, transform.ErrShortDst
	}
	nDst, nSrc, status, _ := t.d.DecodeToUTF8(dst, src, atEOF)
	if status == OutputFull {
		return nDst, nSrc, transform.ErrShortDst
	}
	return nDst, nSrc, nil
}

func (t decodeTransformer) Reset() { t.d.reset() }

// encodeTransformer adapts an Encoder the same way for io.Writer output.
type encodeTransformer struct {
	e *Encoder
}

func (t encodeTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if len(dst) < MinEncodeBufferLength {
		return 0, 0, transform.ErrShortDst
	}
	nDst, nSrc, status, _ := t.e.EncodeFromUTF8(dst, src, atEOF)
	switch {
	case status == OutputFull:
		return nDst, nSrc, transform.ErrShortDst
	case nSrc < len(src) && !atEOF:
		// A scalar split at the end of src; ask for its remaining bytes.
		return nDst, nSrc, transform.ErrShortSrc
	}
	return nDst, nSrc, nil
}

func (t encodeTransformer) Reset() { t.e.reset() }

// NewTransformDecoder returns a transform.Transformer decoding e (BOM
// sniffing included) to UTF-8, for composing with other transformers.
func (e *Encoding) NewTransformDecoder() transform.Transformer {
	return decodeTransformer{d: e.NewDecoder()}
}

// NewTransformEncoder returns a transform.Transformer encoding UTF-8 into
// e's output encoding with numeric character reference replacement.
func (e *Encoding) NewTransformEncoder() transform.Transformer {
	return encodeTransformer{e: e.NewEncoder()}
}

// NewReader returns a reader yielding r's content transcoded from e (BOM
// sniffing included) to UTF-8.
func (e *Encoding) NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, decodeTransformer{d: e.NewDecoder()})
}

// NewWriter returns a writer encoding UTF-8 input into e's output encoding,
// substituting numeric character references for unmappable scalars. Close
// flushes any terminal shift sequence.
func (e *Encoding) NewWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, encodeTransformer{e: e.NewEncoder()})
}
