package charconv

// byLabel maps every label from the Encoding Standard to its encoding. Keys
// are already lowercase; lookups normalize first.
var byLabel = map[string]*Encoding{
	"unicode-1-1-utf-8": UTF8,
	"unicode11utf8":     UTF8,
	"unicode20utf8":     UTF8,
	"utf-8":             UTF8,
	"utf8":              UTF8,
	"x-unicode20utf8":   UTF8,

	"csunicode":       UTF16LE,
	"iso-10646-ucs-2": UTF16LE,
	"ucs-2":           UTF16LE,
	"unicode":         UTF16LE,
	"unicodefeff":     UTF16LE,
	"utf-16":          UTF16LE,
	"utf-16le":        UTF16LE,

	"unicodefffe": UTF16BE,
	"utf-16be":    UTF16BE,

	"ansi_x3.4-1968":  Windows1252,
	"ascii":           Windows1252,
	"cp1252":          Windows1252,
	"cp819":           Windows1252,
	"csisolatin1":     Windows1252,
	"ibm819":          Windows1252,
	"iso-8859-1":      Windows1252,
	"iso-ir-100":      Windows1252,
	"iso8859-1":       Windows1252,
	"iso88591":        Windows1252,
	"iso_8859-1":      Windows1252,
	"iso_8859-1:1987": Windows1252,
	"l1":              Windows1252,
	"latin1":          Windows1252,
	"us-ascii":        Windows1252,
	"windows-1252":    Windows1252,
	"x-cp1252":        Windows1252,

	"csiso2022jp": ISO2022JP,
	"iso-2022-jp": ISO2022JP,

	"x-user-defined": XUserDefined,

	// Labels for encodings that historically enabled cross-encoding script
	// attacks map to the replacement encoding.
	"csiso2022kr":     Replacement,
	"hz-gb-2312":      Replacement,
	"iso-2022-cn":     Replacement,
	"iso-2022-cn-ext": Replacement,
	"iso-2022-kr":     Replacement,
	"replacement":     Replacement,
}

var byName = map[string]*Encoding{
	UTF8.name:         UTF8,
	UTF16LE.name:      UTF16LE,
	UTF16BE.name:      UTF16BE,
	Replacement.name:  Replacement,
	Windows1252.name:  Windows1252,
	XUserDefined.name: XUserDefined,
	ISO2022JP.name:    ISO2022JP,
}

// ForLabel returns the encoding for a label as the Encoding Standard defines
// the lookup: ASCII whitespace is trimmed, ASCII letters are lowercased, and
// unknown labels return nil. Labels of the disabled legacy encodings resolve
// to Replacement.
func ForLabel(label []byte) *Encoding {
	return byLabel[normalizeLabel(label)]
}

// ForLabelNoReplacement is ForLabel except that labels resolving to the
// replacement encoding return nil, for callers that would treat Replacement
// as an ordinary decode target.
func ForLabelNoReplacement(label []byte) *Encoding {
	e := ForLabel(label)
	if e == Replacement {
		return nil
	}
	return e
}

// ForName returns the encoding whose canonical name is name. Unlike labels,
// names come from program code, not from documents; an unknown name is a
// programming error and panics.
func ForName(name []byte) *Encoding {
	if e, ok := byName[string(name)]; ok {
		return e
	}
	panic("charconv: unknown encoding name " + string(name))
}

func normalizeLabel(label []byte) string {
	start, end := 0, len(label)
	for start < end && asciiWhitespace(label[start]) {
		start++
	}
	for end > start && asciiWhitespace(label[end-1]) {
		end--
	}
	b := make([]byte, end-start)
	for i, c := range label[start:end] {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}

func asciiWhitespace(b byte) bool {
	switch b {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}
