package vocab

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"sci-translator/internal/errs"

	"github.com/rs/zerolog/log"
)

// TSVHeader is the first line of candidate and export files.
const TSVHeader = "source\ttranslation"

// ReadCandidates reads a candidate file. The header line is optional and
// blank lines are skipped; rows without exactly two columns are kept as
// malformed candidates so validation can report them.
func ReadCandidates(path string) ([]Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open candidates", path, err)
	}
	defer f.Close()

	var candidates []Candidate
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || (lineNum == 1 && line == TSVHeader) {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			candidates = append(candidates, Candidate{Entry: Entry{Source: line}, Line: lineNum, malformed: true})
			continue
		}
		candidates = append(candidates, Candidate{
			Entry: Entry{Source: fields[0], Translation: fields[1]},
			Line:  lineNum,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.IO("read candidates", path, err)
	}
	return candidates, nil
}

// ExportTSV writes every stored entry to outputPath.
func (s *Store) ExportTSV(ctx context.Context, outputPath string) error {
	if err := s.Preload(ctx); err != nil {
		return err
	}
	entries := s.Entries()

	f, err := os.Create(outputPath)
	if err != nil {
		return errs.IO("create", outputPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, TSVHeader)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Source, e.Translation)
	}
	if err := w.Flush(); err != nil {
		return errs.IO("write", outputPath, err)
	}

	log.Info().Str("path", outputPath).Int("entries", len(entries)).Msg("Exported vocabulary to TSV")
	return nil
}
