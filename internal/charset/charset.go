// Package charset converts corpus bytes between the game's single-byte code
// pages and UTF-8.
package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Default code pages: SCI games ship western text, the Hebrew build is
// written back in windows-1255.
const (
	DefaultSource = "windows-1252"
	DefaultTarget = "windows-1255"
)

var byName = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"windows-1255": charmap.Windows1255,
	"cp1255":       charmap.Windows1255,
	"cp862":        charmap.CodePage862,
	"ibm862":       charmap.CodePage862,
	"iso-8859-8":   charmap.ISO8859_8,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
}

// Lookup resolves a code page name (case-insensitive).
func Lookup(name string) (encoding.Encoding, error) {
	enc, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// Decode converts data in the named code page to a UTF-8 string.
// Bytes the code page leaves undefined decode to U+FFFD.
func Decode(data []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}

// Encode converts s to the named code page. A rune the code page cannot
// represent is an error rather than a silent substitution.
func Encode(s, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return out, nil
}
