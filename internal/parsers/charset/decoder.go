package charset

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding represents a text encoding
type Encoding string

const (
	EncodingAuto        Encoding = "auto"
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1250 Encoding = "windows-1250"
	EncodingISO88592    Encoding = "iso-8859-2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseEncoding resolves a user supplied encoding name
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "windows-1250", "cp1250", "win1250":
		return EncodingWindows1250, nil
	case "iso-8859-2", "latin2":
		return EncodingISO88592, nil
	}
	return "", fmt.Errorf("unsupported encoding %q", name)
}

// DetectEncoding guesses the encoding of a payload. Anything that is not
// valid UTF-8 is assumed to be a legacy Windows-1250 export.
func DetectEncoding(data []byte) Encoding {
	if bytes.HasPrefix(data, utf8BOM) || utf8.Valid(data) {
		return EncodingUTF8
	}
	return EncodingWindows1250
}

// Decode converts data in the given encoding to UTF-8. EncodingAuto runs
// DetectEncoding first. A UTF-8 byte order mark is dropped.
func Decode(data []byte, enc Encoding) ([]byte, error) {
	if enc == EncodingAuto || enc == "" {
		enc = DetectEncoding(data)
	}

	// Payloads that are already UTF-8 are passed through even when a legacy
	// encoding was requested, so they are never decoded twice.
	if enc == EncodingUTF8 || utf8.Valid(data) {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}

	codec, err := codecFor(enc)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(codec.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", enc, err)
	}
	return out, nil
}

func codecFor(enc Encoding) (encoding.Encoding, error) {
	switch enc {
	case EncodingWindows1250:
		return charmap.Windows1250, nil
	case EncodingISO88592:
		return charmap.ISO8859_2, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", enc)
}
