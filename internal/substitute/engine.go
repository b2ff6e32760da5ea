// Package substitute writes a translated mirror of a corpus from a mapping
// table.
package substitute

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sci-translator/internal/errs"
	"sci-translator/internal/extract"
	"sci-translator/internal/filewalker"
	"sci-translator/internal/interpolation"
	"sci-translator/internal/mapping"

	"github.com/rs/zerolog/log"
)

// Report summarizes a substitution run.
type Report struct {
	Files        int
	Changed      int
	Literals     int
	Translated   int
	Untranslated int
	Skipped      int
	Strategies   map[mapping.Strategy]int
	Warnings     []errs.CoverageWarning
}

// Coverage returns the translated share of translatable literals in percent.
func (r *Report) Coverage() float64 {
	total := r.Translated + r.Untranslated
	if total == 0 {
		return 100
	}
	return float64(r.Translated) * 100 / float64(total)
}

// Engine substitutes whole literals using a read-only table.
type Engine struct {
	walker   *filewalker.Walker
	resolver *mapping.Resolver
	workers  int
}

func NewEngine(w *filewalker.Walker, table *mapping.Table, workers int) *Engine {
	return &Engine{walker: w, resolver: mapping.NewResolver(table), workers: workers}
}

// Run parses every corpus file under inputRoot and writes its translated
// form to the same relative path under outputRoot. Literals with no entry
// are left as they are and reported.
func (e *Engine) Run(ctx context.Context, inputRoot, outputRoot string) (*Report, error) {
	if err := checkRoots(inputRoot, outputRoot); err != nil {
		return nil, err
	}

	entries, err := e.walker.Walk(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("walk corpus: %w", err)
	}
	parsed, err := extract.ParseAll(ctx, entries, e.workers)
	if err != nil {
		return nil, err
	}

	report := &Report{Strategies: make(map[mapping.Strategy]int)}
	for i, pr := range parsed {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		entry := entries[i]

		translations := make(map[string]string)
		for _, lit := range pr.Literals {
			report.Literals++
			if interpolation.IsNoise(lit.Text) {
				report.Skipped++
				continue
			}
			dst, strategy, ok := e.resolver.Resolve(lit.Text)
			if !ok {
				report.Untranslated++
				w := errs.CoverageWarning{File: entry.Rel, Line: lit.Line, Text: lit.Text}
				report.Warnings = append(report.Warnings, w)
				log.Warn().Str("file", w.File).Int("line", w.Line).Str("text", lit.Text).Msg("No translation")
				continue
			}
			report.Translated++
			report.Strategies[strategy]++
			translations[lit.Text] = dst
		}

		out, err := entry.Parser.Reconstruct(pr, translations)
		if err != nil {
			return report, fmt.Errorf("reconstruct %s: %w", entry.Rel, err)
		}

		target := filepath.Join(outputRoot, entry.Rel)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return report, errs.IO("create directory", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, out, 0644); err != nil {
			return report, errs.IO("write", target, err)
		}

		report.Files++
		if string(out) != string(pr.Raw) {
			report.Changed++
		}
		log.Debug().Str("file", entry.Rel).Int("literals", len(pr.Literals)).Msg("Wrote translated file")
	}

	log.Info().
		Int("files", report.Files).
		Int("changed", report.Changed).
		Int("translated", report.Translated).
		Int("untranslated", report.Untranslated).
		Str("coverage", fmt.Sprintf("%.1f%%", report.Coverage())).
		Msg("Substitution complete")
	return report, nil
}

// checkRoots rejects an output tree that is, contains, or sits inside the
// input tree.
func checkRoots(inputRoot, outputRoot string) error {
	in, err := filepath.Abs(inputRoot)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	out, err := filepath.Abs(outputRoot)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if in == out || within(out, in) || within(in, out) {
		return errs.Validation("", 0, "output directory %s overlaps input directory %s", out, in)
	}
	return nil
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
