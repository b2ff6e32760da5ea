package extract

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sci-translator/internal/errs"
	"sci-translator/internal/filewalker"
	"sci-translator/internal/parser"

	"github.com/rs/zerolog/log"
)

// Sentinel terminates each block of a multi-line list.
const Sentinel = "====="

// CheckOutputs rejects output paths that collide with each other or with a
// file the walker would read from the corpus at root.
func CheckOutputs(w *filewalker.Walker, root string, outputs ...string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve corpus path: %w", err)
	}
	seen := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		abs, err := filepath.Abs(out)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		if seen[abs] {
			return errs.Validation(out, 0, "output path given twice")
		}
		seen[abs] = true

		rel, err := filepath.Rel(absRoot, abs)
		inside := err == nil && !strings.HasPrefix(rel, "..")
		if inside && w.Claims(abs) {
			return errs.Validation(out, 0, "output would overwrite a corpus file")
		}
	}
	return nil
}

// WriteList writes one string per line, or for multi-line lists each string
// followed by a Sentinel line.
func WriteList(path string, strs []SourceString, multi bool) error {
	return writeLines(path, func(w *bufio.Writer) {
		for _, s := range strs {
			w.WriteString(s.Text)
			w.WriteByte('\n')
			if multi {
				w.WriteString(Sentinel + "\n")
			}
		}
	}, len(strs))
}

// WriteOccurrences writes every occurrence as "text<TAB>[file:line]" with
// file names relative to root.
func WriteOccurrences(path, root string, lits []parser.Literal) error {
	return writeLines(path, func(w *bufio.Writer) {
		for _, lit := range lits {
			name := lit.File
			if rel, err := filepath.Rel(root, lit.File); err == nil {
				name = rel
			}
			fmt.Fprintf(w, "%s\t[%s:%d]\n", lit.Text, name, lit.Line)
		}
	}, len(lits))
}

func writeLines(path string, fill func(w *bufio.Writer), count int) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errs.IO("create directory", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.IO("create", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fill(w)
	if err := w.Flush(); err != nil {
		return errs.IO("write", path, err)
	}
	log.Info().Str("path", path).Int("entries", count).Msg("Wrote list")
	return nil
}
