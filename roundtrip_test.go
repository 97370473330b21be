package charconv

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Decoding arbitrary bytes and re-encoding the result must reproduce the
// same scalar sequence on a second decode.
func TestRoundTripStable(t *testing.T) {
	encodings := []*Encoding{UTF8, Windows1252, XUserDefined, ISO2022JP}

	for _, enc := range encodings {
		t.Run(enc.Name(), func(t *testing.T) {
			for trial := 0; trial < 16; trial++ {
				raw := make([]byte, 128)
				_, err := rand.Read(raw)
				require.NoError(t, err)

				text1, _ := enc.DecodeWithoutBOMHandling(raw)
				encoded, _, _ := enc.Encode(text1)
				text2, _ := enc.DecodeWithoutBOMHandling(encoded)
				encoded2, _, _ := enc.Encode(text2)
				text3, _ := enc.DecodeWithoutBOMHandling(encoded2)
				require.Equal(t, text2, text3)
			}
		})
	}
}

// Full-table encodings decode every byte to a mappable character, so one
// round trip is already lossless.
func TestRoundTripLossless(t *testing.T) {
	for _, enc := range []*Encoding{Windows1252, XUserDefined} {
		t.Run(enc.Name(), func(t *testing.T) {
			raw := make([]byte, 256)
			for i := range raw {
				raw[i] = byte(i)
			}
			text, had := enc.DecodeWithoutBOMHandling(raw)
			require.False(t, had)
			encoded, _, had := enc.Encode(text)
			require.False(t, had)
			require.Equal(t, raw, encoded)
		})
	}
}

func TestRoundTripISO2022JP(t *testing.T) {
	texts := []string{
		"plain",
		"ひらがな and ascii",
		"ｶﾀｶﾅ",
		"¥price‾",
		"−１２３",
	}

	for _, text := range texts {
		encoded, _, had := ISO2022JP.Encode(text)
		require.False(t, had)
		decoded, decHad := ISO2022JP.DecodeWithoutBOMHandling(encoded)
		require.False(t, decHad)

		// Halfwidth katakana only encodes via its fullwidth form, so compare
		// after one stabilizing round trip.
		encoded2, _, _ := ISO2022JP.Encode(decoded)
		decoded2, _ := ISO2022JP.DecodeWithoutBOMHandling(encoded2)
		require.Equal(t, decoded, decoded2)
	}
}

// Encoding values are shared, immutable lookup objects; every stream gets
// its own Decoder/Encoder.
func TestConcurrentStreamsShareEncoding(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for trial := 0; trial < 64; trial++ {
				s, _, _ := Windows1252.Decode([]byte{'a', 0x93, 'b', 0x80})
				if s != "a“b€" {
					return fmt.Errorf("decode: got %q", s)
				}
				b, _, _ := Windows1252.Encode("a“b€")
				if string(b) != "a\x93b\x80" {
					return fmt.Errorf("encode: got %q", b)
				}
				jp, _, _ := ISO2022JP.Encode("あ")
				if string(jp) != "\x1b$B$\"\x1b(B" {
					return fmt.Errorf("iso-2022-jp encode: got %q", jp)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
