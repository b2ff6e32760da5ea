package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sci-translator/internal/errs"
	"sci-translator/internal/extract"
	"sci-translator/internal/worker"

	"github.com/rs/zerolog/log"
)

// DefaultSplitSize is the number of records per part.
const DefaultSplitSize = 250

// Split writes path into parts of at most size records each, named
// <name>_part<N>.txt under outDir. A record is a line, or in multi-line
// mode a whole block with its sentinel, so no block is ever cut.
func Split(path, outDir string, size int, multiline bool) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.IO("read list", path, err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errs.IO("create directory", outDir, err)
	}

	records := splitRecords(string(data), multiline)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var parts []string
	for i, batch := range worker.Batch(records, size) {
		part := filepath.Join(outDir, fmt.Sprintf("%s_part%d.txt", name, i+1))
		if err := os.WriteFile(part, []byte(strings.Join(batch, "")), 0644); err != nil {
			return parts, errs.IO("write", part, err)
		}
		log.Debug().Str("path", part).Int("records", len(batch)).Msg("Wrote part")
		parts = append(parts, part)
	}

	log.Info().Str("path", path).Int("records", len(records)).Int("parts", len(parts)).Msg("Split list")
	return parts, nil
}

// splitRecords cuts content into records that keep their line endings.
func splitRecords(content string, multiline bool) []string {
	lines := strings.SplitAfter(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if !multiline {
		return lines
	}

	var (
		records []string
		block   strings.Builder
	)
	for _, line := range lines {
		block.WriteString(line)
		if strings.TrimRight(line, "\r\n") == extract.Sentinel {
			records = append(records, block.String())
			block.Reset()
		}
	}
	if block.Len() > 0 {
		records = append(records, block.String())
	}
	return records
}
