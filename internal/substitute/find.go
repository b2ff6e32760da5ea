package substitute

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"sci-translator/internal/extract"
	"sci-translator/internal/filewalker"
	"sci-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Match is a corpus line that already holds target-script letters.
type Match struct {
	File string
	Line int
	Text string
}

func (m Match) String() string {
	return fmt.Sprintf("%s:%d: %s", m.File, m.Line, m.Text)
}

// Find lists the lines of a corpus containing letters of script. Script
// sources are searched line by line; resources without line structure are
// searched per string.
func Find(ctx context.Context, w *filewalker.Walker, root string, script *unicode.RangeTable, workers int) ([]Match, error) {
	entries, err := w.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("walk corpus: %w", err)
	}
	parsed, err := extract.ParseAll(ctx, entries, workers)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for i, pr := range parsed {
		rel := entries[i].Rel
		if pr.FileType == "script" {
			for n, line := range strings.Split(pr.Content, "\n") {
				if textutil.ContainsScript(line, script) {
					matches = append(matches, Match{File: rel, Line: n + 1, Text: strings.TrimSpace(line)})
				}
			}
			continue
		}
		for _, lit := range pr.Literals {
			if textutil.ContainsScript(lit.Text, script) {
				matches = append(matches, Match{File: rel, Line: lit.Line, Text: lit.Text})
			}
		}
	}

	log.Info().Int("files", len(parsed)).Int("matches", len(matches)).Msg("Search complete")
	return matches, nil
}
