package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sci-translator/internal/errs"
	"sci-translator/internal/textutil"
)

// TSV resource tables mirror a TEX resource one row per string.
const (
	TSVHeader     = "Index\tNoun\tSelector\tVerb\tText\tOriginal"
	TSVTextColumn = 4
)

// TSVParser handles UTF-8 resource tables produced by tex2tsv. Rows whose
// first field is not numeric (the header) are left alone.
type TSVParser struct {
	column int
}

func NewTSVParser(column int) *TSVParser {
	return &TSVParser{column: column}
}

func (p *TSVParser) CanParse(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".tsv"
}

func (p *TSVParser) Parse(filePath string) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errs.IO("read table", filePath, err)
	}
	return p.ParseData(filePath, data), nil
}

// ParseData scans already loaded table bytes.
func (p *TSVParser) ParseData(filePath string, data []byte) *ParseResult {
	result := &ParseResult{
		FilePath: filePath,
		FileType: "tsv",
		Raw:      data,
		Content:  string(data),
	}

	for lineIdx, line := range strings.Split(result.Content, "\n") {
		fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if !isRowIndex(fields[0]) || len(fields) <= p.column {
			continue
		}
		result.Literals = append(result.Literals, Literal{
			Text:  fields[p.column],
			File:  filePath,
			Line:  lineIdx + 1,
			Start: lineIdx,
			End:   p.column,
		})
	}
	return result
}

func (p *TSVParser) Reconstruct(result *ParseResult, translations map[string]string) ([]byte, error) {
	lines := strings.Split(result.Content, "\n")
	changed := false

	for _, lit := range result.Literals {
		translated, ok := translations[lit.Text]
		if !ok || translated == lit.Text {
			continue
		}
		line := lines[lit.Start]
		cr := strings.HasSuffix(line, "\r")
		fields := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
		fields[lit.End] = textutil.EscapeLineBreaks(translated)
		line = strings.Join(fields, "\t")
		if cr {
			line += "\r"
		}
		lines[lit.Start] = line
		changed = true
	}

	if !changed {
		return bytes.Clone(result.Raw), nil
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// TEXToTSV renders resource strings as a table, escaping line breaks.
func TEXToTSV(texts []string) []byte {
	var sb strings.Builder
	sb.WriteString(TSVHeader + "\n")
	for i, text := range texts {
		fmt.Fprintf(&sb, "%d\t\t\t\t%s\t\n", i, textutil.EscapeLineBreaks(text))
	}
	return []byte(sb.String())
}

// TSVToTEX collects one column of every data row, unescaping line breaks.
// Rows shorter than the column contribute an empty string.
func TSVToTEX(content string, column int) []string {
	var texts []string
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if !isRowIndex(fields[0]) {
			continue
		}
		text := ""
		if len(fields) > column {
			text = textutil.UnescapeLineBreaks(fields[column])
		}
		texts = append(texts, text)
	}
	return texts
}

func isRowIndex(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 32)
	return err == nil
}
