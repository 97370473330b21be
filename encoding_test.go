package charconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForLabel(t *testing.T) {
	cases := []struct {
		label string
		want  *Encoding
	}{
		{"utf-8", UTF8},
		{"UTF-8", UTF8},
		{" \tUtF-8\n", UTF8},
		{"unicode-1-1-utf-8", UTF8},
		{"latin1", Windows1252},
		{"us-ascii", Windows1252},
		{"iso-8859-1", Windows1252},
		{"utf-16", UTF16LE},
		{"csunicode", UTF16LE},
		{"unicodefffe", UTF16BE},
		{"iso-2022-jp", ISO2022JP},
		{"x-user-defined", XUserDefined},
		{"hz-gb-2312", Replacement},
		{"iso-2022-kr", Replacement},
		{"utf-8 ", UTF8},
		{"utf 8", nil},
		{"", nil},
		{"bogus", nil},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			require.Same(t, tc.want, ForLabel([]byte(tc.label)))
		})
	}
}

func TestForLabelNoReplacement(t *testing.T) {
	require.Same(t, UTF8, ForLabelNoReplacement([]byte("utf-8")))
	require.Nil(t, ForLabelNoReplacement([]byte("replacement")))
	require.Nil(t, ForLabelNoReplacement([]byte("hz-gb-2312")))
}

func TestForName(t *testing.T) {
	require.Same(t, UTF8, ForName([]byte("UTF-8")))
	require.Same(t, Windows1252, ForName([]byte("windows-1252")))
	require.Panics(t, func() { ForName([]byte("latin1")) })
}

func TestForBOM(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want *Encoding
		n    int
	}{
		{"utf8", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, UTF8, 3},
		{"utf16le", []byte{0xFF, 0xFE, 0x41, 0x00}, UTF16LE, 2},
		{"utf16be", []byte{0xFE, 0xFF, 0x00, 0x41}, UTF16BE, 2},
		{"none", []byte{0x48, 0x69}, nil, 0},
		{"truncated", []byte{0xEF, 0xBB}, nil, 0},
		{"empty", nil, nil, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc, n := ForBOM(tc.data)
			require.Same(t, tc.want, enc)
			require.Equal(t, tc.n, n)
		})
	}
}

func TestEncodingProperties(t *testing.T) {
	require.Equal(t, "UTF-8", UTF8.Name())
	require.Equal(t, "windows-1252", Windows1252.Name())

	require.Same(t, UTF8, UTF16LE.OutputEncoding())
	require.Same(t, UTF8, UTF16BE.OutputEncoding())
	require.Same(t, UTF8, Replacement.OutputEncoding())
	require.Same(t, Windows1252, Windows1252.OutputEncoding())
	require.Same(t, ISO2022JP, ISO2022JP.OutputEncoding())

	require.True(t, UTF8.IsASCIICompatible())
	require.True(t, Windows1252.IsASCIICompatible())
	require.True(t, XUserDefined.IsASCIICompatible())
	require.False(t, UTF16LE.IsASCIICompatible())
	require.False(t, ISO2022JP.IsASCIICompatible())
	require.False(t, Replacement.IsASCIICompatible())

	require.True(t, UTF8.CanEncodeEverything())
	require.True(t, UTF16BE.CanEncodeEverything()) // encodes via UTF-8
	require.False(t, Windows1252.CanEncodeEverything())
	require.False(t, ISO2022JP.CanEncodeEverything())
}

func TestDecodeConvenience(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		s, enc, had := Windows1252.Decode([]byte{0x93, 'a', 0x94})
		require.Equal(t, "“a”", s)
		require.Same(t, Windows1252, enc)
		require.False(t, had)
	})

	t.Run("bom overrides", func(t *testing.T) {
		s, enc, had := Windows1252.Decode([]byte{0xFF, 0xFE, 0x41, 0x00})
		require.Equal(t, "A", s)
		require.Same(t, UTF16LE, enc)
		require.False(t, had)
	})

	t.Run("utf8 bom removed", func(t *testing.T) {
		s, enc, had := Windows1252.Decode([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'})
		require.Equal(t, "hi", s)
		require.Same(t, UTF8, enc)
		require.False(t, had)
	})

	t.Run("replacement flag", func(t *testing.T) {
		s, _, had := UTF8.Decode([]byte{'a', 0xFF, 'b'})
		require.Equal(t, "a�b", s)
		require.True(t, had)
	})

	t.Run("without bom handling keeps bom", func(t *testing.T) {
		s, had := UTF8.DecodeWithoutBOMHandling([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'})
		require.Equal(t, "\uFEFFhi", s)
		require.False(t, had)
	})

	t.Run("bom removal strips own bom only", func(t *testing.T) {
		s, had := UTF8.DecodeWithBOMRemoval([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'})
		require.Equal(t, "hi", s)
		require.False(t, had)

		s, had = Windows1252.DecodeWithBOMRemoval([]byte{0xEF, 0xBB, 0xBF})
		require.Equal(t, "ï»¿", s)
		require.False(t, had)
	})
}

func TestDecodeWithoutBOMHandlingAndWithoutReplacement(t *testing.T) {
	s, ok := UTF8.DecodeWithoutBOMHandlingAndWithoutReplacement([]byte("café"))
	require.True(t, ok)
	require.Equal(t, "café", s)

	s, ok = UTF8.DecodeWithoutBOMHandlingAndWithoutReplacement([]byte{0x80})
	require.False(t, ok)
	require.Equal(t, "", s)

	s, ok = UTF8.DecodeWithoutBOMHandlingAndWithoutReplacement([]byte{'o', 'k', 0xC3})
	require.False(t, ok)
	require.Equal(t, "", s)
}

func TestEncodeConvenience(t *testing.T) {
	t.Run("utf8 passthrough", func(t *testing.T) {
		b, enc, had := UTF8.Encode("café")
		require.Equal(t, []byte("café"), b)
		require.Same(t, UTF8, enc)
		require.False(t, had)
	})

	t.Run("decode-only targets produce utf8", func(t *testing.T) {
		b, enc, had := UTF16LE.Encode("hi")
		require.Equal(t, []byte("hi"), b)
		require.Same(t, UTF8, enc)
		require.False(t, had)
	})

	t.Run("windows1252", func(t *testing.T) {
		b, enc, had := Windows1252.Encode("café €5")
		require.Equal(t, []byte{'c', 'a', 'f', 0xE9, ' ', 0x80, '5'}, b)
		require.Same(t, Windows1252, enc)
		require.False(t, had)
	})

	t.Run("numeric character reference", func(t *testing.T) {
		b, _, had := Windows1252.Encode("\U0001F600")
		require.Equal(t, []byte("&#128512;"), b)
		require.True(t, had)
	})

	t.Run("x-user-defined", func(t *testing.T) {
		b, _, had := XUserDefined.Encode("a")
		require.Equal(t, []byte{'a', 0x80, 0xFF}, b)
		require.False(t, had)
	})
}
