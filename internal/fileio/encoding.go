package fileio

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// fallbackEncodings are tried in order when the input is not valid
// UTF-8. Latin-1 is last because it accepts any byte sequence, making
// it the terminal fallback.
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"shift_jis", japanese.ShiftJIS},
	{"iso-2022-jp", japanese.ISO2022JP},
	{"latin-1", charmap.ISO8859_1},
}

// decodeText converts raw upload bytes to a UTF-8 string, sniffing the
// source encoding. A UTF-8 BOM is stripped. Decoding always succeeds:
// the latin-1 fallback maps every byte to some rune, mirroring a
// lossy-but-forgiving read of unknown encodings.
func decodeText(data []byte) (text, encodingName string) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(bytes.TrimPrefix(data, utf8BOM)), "utf-8-sig"
	}
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}

	for _, fe := range fallbackEncodings {
		out, err := fe.enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		// The x/text decoders substitute U+FFFD for undecodable bytes
		// instead of erroring; treat any substitution as a miss and try
		// the next encoding.
		if bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		return string(out), fe.name
	}

	// Unreachable in practice (latin-1 decodes anything), but keep the
	// function total.
	return string(data), "binary"
}
