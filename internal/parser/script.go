package parser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"sci-translator/internal/charset"
	"sci-translator/internal/errs"
)

// ScriptParser extracts delimited string literals from decompiled SCI
// script sources (.sc).
type ScriptParser struct {
	delim  Delimiter
	encIn  string
	encOut string
}

func NewScriptParser(delim Delimiter, encIn, encOut string) *ScriptParser {
	return &ScriptParser{delim: delim, encIn: encIn, encOut: encOut}
}

func (p *ScriptParser) CanParse(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".sc"
}

func (p *ScriptParser) Parse(filePath string) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errs.IO("read script", filePath, err)
	}
	return p.ParseData(filePath, data)
}

// ParseData scans already loaded file bytes.
func (p *ScriptParser) ParseData(filePath string, data []byte) (*ParseResult, error) {
	content, err := charset.Decode(data, p.encIn)
	if err != nil {
		return nil, errs.Validation(filePath, 0, "%v", err)
	}

	result := &ParseResult{
		FilePath: filePath,
		FileType: "script",
		Raw:      data,
		Content:  content,
	}

	lits, err := scanLiterals(content, p.delim, filePath)
	if err != nil {
		return nil, err
	}
	result.Literals = lits
	return result, nil
}

// scanLiterals walks content once. A backslash escapes the next byte inside
// a literal and braces nest. Outside literals, line comments (';' for brace
// sources, '//' for quote sources) are skipped. Brace sources also skip
// quoted strings so a ';' inside one does not open a comment.
func scanLiterals(content string, delim Delimiter, filePath string) ([]Literal, error) {
	var lits []Literal
	open, closing := delim.open(), delim.close()
	line := 1

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\n':
			line++
		case delim == Braces && c == '"':
			if end, breaks, ok := skipQuoted(content, i); ok {
				i = end
				line += breaks
			}
		case strings.HasPrefix(content[i:], delim.comment()):
			for i+1 < len(content) && content[i+1] != '\n' {
				i++
			}
		case c == open:
			startLine := line
			depth := 1
			j := i + 1
			for ; j < len(content); j++ {
				ch := content[j]
				if ch == '\\' {
					if j+1 < len(content) && content[j+1] == '\n' {
						line++
					}
					j++
					continue
				}
				if ch == '\n' {
					line++
				}
				if delim == Braces && ch == open {
					depth++
					continue
				}
				if ch == closing {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			if depth != 0 {
				return nil, errs.Validation(filePath, startLine, "unterminated %c literal", open)
			}
			lits = append(lits, Literal{
				Text:  content[i+1 : j],
				File:  filePath,
				Line:  startLine,
				Start: i + 1,
				End:   j,
			})
			i = j
		}
	}
	return lits, nil
}

// skipQuoted returns the index of the quote closing the string opened at
// start and the number of newlines it spans.
func skipQuoted(content string, start int) (end, breaks int, ok bool) {
	for j := start + 1; j < len(content); j++ {
		switch content[j] {
		case '\\':
			if j+1 < len(content) && content[j+1] == '\n' {
				breaks++
			}
			j++
		case '\n':
			breaks++
		case '"':
			return j, breaks, true
		}
	}
	return 0, 0, false
}

func (p *ScriptParser) Reconstruct(result *ParseResult, translations map[string]string) ([]byte, error) {
	var sb strings.Builder
	last := 0
	changed := false

	for _, lit := range result.Literals {
		translated, ok := translations[lit.Text]
		if !ok || translated == lit.Text {
			continue
		}
		if err := p.checkBalanced(translated); err != nil {
			return nil, errs.Validation(result.FilePath, lit.Line, "translation of %q: %v", lit.Text, err)
		}
		sb.WriteString(result.Content[last:lit.Start])
		sb.WriteString(translated)
		last = lit.End
		changed = true
	}

	if !changed {
		return bytes.Clone(result.Raw), nil
	}
	sb.WriteString(result.Content[last:])

	out, err := charset.Encode(sb.String(), p.encOut)
	if err != nil {
		return nil, errs.Validation(result.FilePath, 0, "%v", err)
	}
	return out, nil
}

// checkBalanced rejects a translation that would close its literal early.
func (p *ScriptParser) checkBalanced(s string) error {
	wrapped := string(p.delim.open()) + s + string(p.delim.close())
	lits, err := scanLiterals(wrapped, p.delim, "")
	if err == nil && len(lits) == 1 && lits[0].End == len(wrapped)-1 {
		return nil
	}
	if p.delim == Quotes {
		return errors.New(`unescaped " in translation`)
	}
	return errors.New("unbalanced braces in translation")
}
