package ingest

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/starford/sigil/internal/apperr"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode turns raw document bytes into text for the pipeline: a leading BOM
// is dropped, line endings become \n and the result is NFC-normalised.
// Invalid UTF-8 yields a *apperr.DecodeError.
func Decode(source string, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", &apperr.DecodeError{Source: source, Offset: invalidOffset(data)}
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text), nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}
