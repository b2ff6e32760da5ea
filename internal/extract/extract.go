// Package extract collects the translatable strings of a corpus into ordered,
// deduplicated lists split by category.
package extract

import (
	"context"
	"fmt"

	"sci-translator/internal/filewalker"
	"sci-translator/internal/interpolation"
	"sci-translator/internal/parser"
	"sci-translator/internal/textutil"
	"sci-translator/internal/worker"

	"github.com/rs/zerolog/log"
)

// Category routes a string to one of the three output lists.
type Category string

const (
	Single Category = "single"
	Multi  Category = "multi"
	Format Category = "format"
)

// Classify picks the category of a literal. Line breaks win over
// placeholders so a translator always sees a multi-line block whole.
func Classify(text string) Category {
	switch {
	case textutil.HasLineBreak(text):
		return Multi
	case interpolation.Has(text):
		return Format
	default:
		return Single
	}
}

// SourceString is a unique extracted string.
type SourceString struct {
	Text        string
	Category    Category
	File        string
	Line        int
	Occurrences int
}

// Result is the outcome of one extraction run.
type Result struct {
	// Strings holds unique strings in first-seen order.
	Strings []SourceString
	// Literals holds every kept occurrence, duplicates included.
	Literals []parser.Literal
	// Skipped counts noise literals (empty, punctuation, placeholder only).
	Skipped int
	Files   int
}

// ByCategory filters Strings keeping their order.
func (r *Result) ByCategory(c Category) []SourceString {
	var out []SourceString
	for _, s := range r.Strings {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}

// Collect deduplicates the literals of parsed files by exact text.
func Collect(results []*parser.ParseResult) *Result {
	res := &Result{Files: len(results)}
	index := make(map[string]int)

	for _, pr := range results {
		for _, lit := range pr.Literals {
			if interpolation.IsNoise(lit.Text) {
				res.Skipped++
				continue
			}
			res.Literals = append(res.Literals, lit)
			if i, ok := index[lit.Text]; ok {
				res.Strings[i].Occurrences++
				continue
			}
			index[lit.Text] = len(res.Strings)
			res.Strings = append(res.Strings, SourceString{
				Text:        lit.Text,
				Category:    Classify(lit.Text),
				File:        lit.File,
				Line:        lit.Line,
				Occurrences: 1,
			})
		}
	}
	return res
}

// Extractor walks a corpus and parses its files.
type Extractor struct {
	walker  *filewalker.Walker
	workers int
}

func NewExtractor(w *filewalker.Walker, workers int) *Extractor {
	return &Extractor{walker: w, workers: workers}
}

// Run parses every corpus file under root. The first failing file, in walk
// order, aborts the run.
func (e *Extractor) Run(ctx context.Context, root string) (*Result, error) {
	entries, err := e.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("walk corpus: %w", err)
	}

	parsed, err := ParseAll(ctx, entries, e.workers)
	if err != nil {
		return nil, err
	}

	res := Collect(parsed)
	log.Info().
		Int("files", res.Files).
		Int("occurrences", len(res.Literals)).
		Int("unique", len(res.Strings)).
		Int("skipped", res.Skipped).
		Msg("Extraction complete")
	return res, nil
}

// ParseAll parses entries on the worker pool and returns results in walk order.
func ParseAll(ctx context.Context, entries []filewalker.FileEntry, workers int) ([]*parser.ParseResult, error) {
	pool := worker.NewPool[filewalker.FileEntry, *parser.ParseResult](workers,
		func(ctx context.Context, entry filewalker.FileEntry) (*parser.ParseResult, error) {
			return entry.Parser.Parse(entry.Path)
		},
	)

	tasks := pool.Execute(ctx, entries)
	parsed := make([]*parser.ParseResult, 0, len(tasks))
	for _, task := range tasks {
		if task.Err != nil {
			return nil, fmt.Errorf("parse %s: %w", task.Input.Rel, task.Err)
		}
		parsed = append(parsed, task.Result)
	}
	return parsed, nil
}
