package charconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeChunks runs a full stream through EncodeFromUTF8, re-presenting any
// unconsumed suffix (a scalar split across chunks) with the next chunk.
func encodeChunks(t *testing.T, e *Encoder, chunks [][]byte, dstSize int) ([]byte, bool) {
	t.Helper()
	dst := make([]byte, dstSize)
	var out []byte
	var carry []byte
	had := false
	for ci, chunk := range chunks {
		last := ci == len(chunks)-1
		src := append(carry, chunk...)
		for {
			nDst, nSrc, status, h := e.EncodeFromUTF8(dst, src, last)
			out = append(out, dst[:nDst]...)
			src = src[nSrc:]
			had = had || h
			if status == InputExhausted {
				break
			}
			require.Equal(t, OutputFull, status)
		}
		carry = src
	}
	require.Empty(t, carry)
	return out, had
}

func TestEncodeFromUTF8(t *testing.T) {
	cases := []struct {
		name string
		enc  *Encoding
		src  string
		want []byte
		had  bool
	}{
		{"utf8 identity", UTF8, "héllo \U0001F600", []byte("héllo \U0001F600"), false},
		{"windows1252", Windows1252, "café €5", []byte{'c', 'a', 'f', 0xE9, ' ', 0x80, '5'}, false},
		{"windows1252 ncr", Windows1252, "a\U0001F600b", []byte("a&#128512;b"), true},
		{"iso2022jp ascii only", ISO2022JP, "plain", []byte("plain"), false},
		{"iso2022jp shifts", ISO2022JP, "aあb", []byte("a\x1b$B$\"\x1b(Bb"), false},
		{"iso2022jp final flush", ISO2022JP, "あ", []byte("\x1b$B$\"\x1b(B"), false},
		{"iso2022jp roman yen", ISO2022JP, "¥", []byte("\x1b(J\x5c\x1b(B"), false},
		{"iso2022jp overline", ISO2022JP, "‾", []byte("\x1b(J\x7e\x1b(B"), false},
		{"iso2022jp minus sign", ISO2022JP, "−", []byte("\x1b$B\x21\x5d\x1b(B"), false},
		{"iso2022jp halfwidth katakana", ISO2022JP, "ｱ", []byte("\x1b$B\x25\x22\x1b(B"), false},
		{"iso2022jp ncr", ISO2022JP, "a\U0001F600", []byte("a&#128512;"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := []byte(tc.src)
			whole, had := encodeChunks(t, tc.enc.NewEncoder(), [][]byte{src}, 64)
			require.Equal(t, tc.want, whole)
			require.Equal(t, tc.had, had)

			for cut := 0; cut <= len(src); cut++ {
				got, _ := encodeChunks(t, tc.enc.NewEncoder(), [][]byte{src[:cut], src[cut:]}, 64)
				require.Equalf(t, tc.want, got, "split at %d", cut)
			}
		})
	}
}

func TestEncodeFromUTF8SmallOutputBuffer(t *testing.T) {
	src := []byte("aあbい\U0001F600")
	want, _ := encodeChunks(t, ISO2022JP.NewEncoder(), [][]byte{src}, 256)
	got, _ := encodeChunks(t, ISO2022JP.NewEncoder(), [][]byte{src}, MinEncodeBufferLength)
	require.Equal(t, want, got)
}

func TestEncodeFromUTF8WithoutReplacement(t *testing.T) {
	e := Windows1252.NewEncoder()
	dst := make([]byte, 64)
	src := []byte("ok\U0001F600rest")

	nDst, nSrc, status := e.EncodeFromUTF8WithoutReplacement(dst, src, true)
	require.Equal(t, Unmappable, status)
	require.Equal(t, []byte("ok"), dst[:nDst])
	require.Equal(t, 2, nSrc) // the emoji's bytes stay unconsumed

	// Skip the unmappable scalar and continue.
	nDst, nSrc2, status := e.EncodeFromUTF8WithoutReplacement(dst, src[nSrc+4:], true)
	require.Equal(t, InputExhausted, status)
	require.Equal(t, []byte("rest"), dst[:nDst])
	require.Equal(t, 4, nSrc2)
}

func TestEncodeFromUTF8InvalidInput(t *testing.T) {
	// Invalid UTF-8 input degrades to U+FFFD, which an ASCII-only target can
	// only express as a numeric character reference.
	out, had := encodeChunks(t, Windows1252.NewEncoder(), [][]byte{{'a', 0xFF, 'b'}}, 64)
	require.Equal(t, []byte("a&#65533;b"), out)
	require.True(t, had)

	out, had = encodeChunks(t, UTF8.NewEncoder(), [][]byte{{'a', 0xFF, 'b'}}, 64)
	require.Equal(t, []byte("a�b"), out)
	require.False(t, had)
}

func TestEncodeFromUTF16(t *testing.T) {
	cases := []struct {
		name string
		enc  *Encoding
		src  []uint16
		want []byte
		had  bool
	}{
		{"ascii", Windows1252, []uint16{'h', 'i'}, []byte("hi"), false},
		{"bmp", Windows1252, []uint16{0xE9, 0x20AC}, []byte{0xE9, 0x80}, false},
		{"surrogate pair ncr", Windows1252, []uint16{0xD83D, 0xDE00}, []byte("&#128512;"), true},
		{"unpaired lead", Windows1252, []uint16{0xD83D, 'x'}, []byte("&#65533;x"), true},
		{"lone trail", Windows1252, []uint16{0xDE00}, []byte("&#65533;"), true},
		{"pair to utf8", UTF8, []uint16{0xD83D, 0xDE00}, []byte("\U0001F600"), false},
		{"kana", ISO2022JP, []uint16{0x3042}, []byte("\x1b$B$\"\x1b(B"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.enc.NewEncoder()
			dst := make([]byte, e.MaxBufferLengthFromUTF16WithoutReplacement(len(tc.src))+16)
			nDst, nSrc, status, had := e.EncodeFromUTF16(dst, tc.src, true)
			require.Equal(t, InputExhausted, status)
			require.Equal(t, len(tc.src), nSrc)
			require.Equal(t, tc.want, dst[:nDst])
			require.Equal(t, tc.had, had)
		})
	}
}

func TestEncodeFromUTF16WithoutReplacement(t *testing.T) {
	e := Windows1252.NewEncoder()
	dst := make([]byte, 64)
	src := []uint16{'o', 'k', 0xD83D, 0xDE00}

	nDst, nSrc, status := e.EncodeFromUTF16WithoutReplacement(dst, src, true)
	require.Equal(t, Unmappable, status)
	require.Equal(t, []byte("ok"), dst[:nDst])
	require.Equal(t, 2, nSrc)
}

func TestEncoderSplitScalarAcrossCalls(t *testing.T) {
	// The trailing lead byte is left unconsumed on the first call.
	e := Windows1252.NewEncoder()
	dst := make([]byte, 64)

	nDst, nSrc, status, _ := e.EncodeFromUTF8(dst, []byte{'a', 0xC3}, false)
	require.Equal(t, InputExhausted, status)
	require.Equal(t, 1, nSrc)
	require.Equal(t, []byte("a"), dst[:nDst])

	nDst, nSrc, status, _ = e.EncodeFromUTF8(dst, []byte{0xC3, 0xA9}, true)
	require.Equal(t, InputExhausted, status)
	require.Equal(t, 2, nSrc)
	require.Equal(t, []byte{0xE9}, dst[:nDst])
}

func TestEncoderUnmappableControls(t *testing.T) {
	// ESC, SO and SI never encode into ISO-2022-JP; they would change the
	// decoder's state.
	out, had := encodeChunks(t, ISO2022JP.NewEncoder(), [][]byte{{'a', 0x1B, 'b'}}, 64)
	require.Equal(t, []byte("a&#27;b"), out)
	require.True(t, had)

	e := ISO2022JP.NewEncoder()
	dst := make([]byte, 64)
	_, nSrc, status := e.EncodeFromUTF8WithoutReplacement(dst, []byte{0x0E}, true)
	require.Equal(t, Unmappable, status)
	require.Equal(t, 0, nSrc)
}

func TestEncoderMinimumBufferPanics(t *testing.T) {
	require.Panics(t, func() {
		e := Windows1252.NewEncoder()
		e.EncodeFromUTF8(make([]byte, MinEncodeBufferLength-1), []byte("x"), true)
	})
}

func TestEncoderUseAfterFinishPanics(t *testing.T) {
	e := Windows1252.NewEncoder()
	dst := make([]byte, 16)
	_, _, status, _ := e.EncodeFromUTF8(dst, []byte("x"), true)
	require.Equal(t, InputExhausted, status)
	require.Panics(t, func() { e.EncodeFromUTF8(dst, nil, true) })
}

func TestEncoderMaxBufferLength(t *testing.T) {
	e := ISO2022JP.NewEncoder()
	src := []byte("あ¥aいb")

	dst := make([]byte, e.MaxBufferLengthFromUTF8WithoutReplacement(len(src)))
	nDst, nSrc, status := e.EncodeFromUTF8WithoutReplacement(dst, src, true)
	require.Equal(t, InputExhausted, status)
	require.Equal(t, len(src), nSrc)
	require.NotZero(t, nDst)
}
