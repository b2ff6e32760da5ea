package parser

import "fmt"

// Literal is one translatable string occurrence inside a corpus file.
type Literal struct {
	// Text is the raw content between the delimiters, decoded to UTF-8.
	Text string
	// File is the source file path.
	File string
	// Line is the 1-based line where the literal opens. For TEX resources it
	// is the 1-based string index.
	Line int
	// Start and End bound Text inside ParseResult.Content (script files) or
	// the row/column coordinates for table formats.
	Start, End int
}

// ParseResult holds parsing output for a single file.
type ParseResult struct {
	// FilePath is the path the file was read from.
	FilePath string
	// FileType is the detected type (script, tex, tsv).
	FileType string
	// Literals are the extracted strings in file order.
	Literals []Literal
	// Raw is the file as read; unchanged files are written back from it.
	Raw []byte
	// Content is the decoded text of line-oriented files.
	Content string
	// Header reports whether a TEX resource carried the 0x83 0x00 header.
	Header bool
}

// Parser is the interface for all corpus file parsers.
type Parser interface {
	// CanParse returns true if this parser handles the given file name.
	CanParse(name string) bool
	// Parse extracts literals from a file.
	Parse(filePath string) (*ParseResult, error)
	// Reconstruct rebuilds the file with translated literals, keyed by the
	// literal's raw text. Untranslated literals stay as they are.
	Reconstruct(result *ParseResult, translations map[string]string) ([]byte, error)
}

// Delimiter selects how script sources mark their string literals.
type Delimiter string

const (
	Braces Delimiter = "braces"
	Quotes Delimiter = "quotes"
)

// ParseDelimiter validates a --delimiter value.
func ParseDelimiter(s string) (Delimiter, error) {
	switch Delimiter(s) {
	case Braces, Quotes:
		return Delimiter(s), nil
	case "":
		return Braces, nil
	default:
		return "", fmt.Errorf("unsupported delimiter %q (want braces or quotes)", s)
	}
}

func (d Delimiter) open() byte {
	if d == Quotes {
		return '"'
	}
	return '{'
}

func (d Delimiter) close() byte {
	if d == Quotes {
		return '"'
	}
	return '}'
}

func (d Delimiter) comment() string {
	if d == Quotes {
		return "//"
	}
	return ";"
}
