package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"sci-translator/internal/charset"
	"sci-translator/internal/errs"
)

// texHeader opens every Sierra text resource.
var texHeader = []byte{0x83, 0x00}

// TEXParser handles SCI text resources: an optional 0x83 0x00 header
// followed by NUL-terminated strings. Each string is one literal.
type TEXParser struct {
	encIn  string
	encOut string
}

func NewTEXParser(encIn, encOut string) *TEXParser {
	return &TEXParser{encIn: encIn, encOut: encOut}
}

// CanParse accepts *.tex and the text.NNN naming of extracted resources.
func (p *TEXParser) CanParse(name string) bool {
	base := strings.ToLower(filepath.Base(name))
	return filepath.Ext(base) == ".tex" || strings.HasPrefix(base, "text.")
}

func (p *TEXParser) Parse(filePath string) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errs.IO("read text resource", filePath, err)
	}
	return p.ParseData(filePath, data)
}

// ParseData splits already loaded resource bytes.
func (p *TEXParser) ParseData(filePath string, data []byte) (*ParseResult, error) {
	header, texts, err := DecodeTEX(data, p.encIn)
	if err != nil {
		return nil, errs.Validation(filePath, 0, "%v", err)
	}

	result := &ParseResult{
		FilePath: filePath,
		FileType: "tex",
		Raw:      data,
		Header:   header,
	}
	for i, text := range texts {
		result.Literals = append(result.Literals, Literal{
			Text:  text,
			File:  filePath,
			Line:  i + 1,
			Start: i,
			End:   i,
		})
	}
	return result, nil
}

func (p *TEXParser) Reconstruct(result *ParseResult, translations map[string]string) ([]byte, error) {
	texts := make([]string, len(result.Literals))
	changed := false
	for i, lit := range result.Literals {
		texts[i] = lit.Text
		if translated, ok := translations[lit.Text]; ok && translated != lit.Text {
			texts[i] = translated
			changed = true
		}
	}
	if !changed {
		return bytes.Clone(result.Raw), nil
	}

	out, err := encodeTEX(texts, p.encOut, result.Header)
	if err != nil {
		return nil, errs.Validation(result.FilePath, 0, "%v", err)
	}
	return out, nil
}

// DecodeTEX splits a text resource into its strings. Bytes after the last
// NUL, if any, form a final string.
func DecodeTEX(data []byte, encoding string) (header bool, texts []string, err error) {
	if bytes.HasPrefix(data, texHeader) {
		header = true
		data = data[len(texHeader):]
	}
	if len(data) == 0 {
		return header, nil, nil
	}

	parts := bytes.Split(data, []byte{0})
	if len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	texts = make([]string, 0, len(parts))
	for _, raw := range parts {
		s, err := charset.Decode(raw, encoding)
		if err != nil {
			return header, nil, err
		}
		texts = append(texts, s)
	}
	return header, texts, nil
}

// EncodeTEX writes the header and each string NUL-terminated.
func EncodeTEX(texts []string, encoding string) ([]byte, error) {
	return encodeTEX(texts, encoding, true)
}

func encodeTEX(texts []string, encoding string, header bool) ([]byte, error) {
	var buf bytes.Buffer
	if header {
		buf.Write(texHeader)
	}
	for _, s := range texts {
		b, err := charset.Encode(s, encoding)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
		buf.WriteByte(0)
	}
	return buf.Bytes(), nil
}
