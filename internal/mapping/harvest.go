package mapping

import (
	"context"
	"fmt"

	"sci-translator/internal/errs"
	"sci-translator/internal/extract"
	"sci-translator/internal/filewalker"
	"sci-translator/internal/interpolation"

	"github.com/rs/zerolog/log"
)

// HarvestStats summarizes a Harvest call.
type HarvestStats struct {
	Files      int
	Skipped    int
	Pairs      int
	Added      int
	Duplicates int
}

// Harvester pairs the literals of an original corpus with those of a
// previously translated copy of it.
type Harvester struct {
	original   *filewalker.Walker
	translated *filewalker.Walker
	workers    int
}

// NewHarvester creates a Harvester. The two walkers usually differ only in
// the code page they decode with.
func NewHarvester(original, translated *filewalker.Walker, workers int) *Harvester {
	return &Harvester{original: original, translated: translated, workers: workers}
}

// Harvest walks both corpora and pairs literals file by file, by position.
// Files missing from the translated corpus, or whose literal counts differ,
// are skipped with a warning. Literals left identical are untranslated.
func (h *Harvester) Harvest(ctx context.Context, originalRoot, translatedRoot string) (*Table, HarvestStats, error) {
	var stats HarvestStats

	origEntries, err := h.original.Walk(originalRoot)
	if err != nil {
		return nil, stats, fmt.Errorf("walk original corpus: %w", err)
	}
	transEntries, err := h.translated.Walk(translatedRoot)
	if err != nil {
		return nil, stats, fmt.Errorf("walk translated corpus: %w", err)
	}

	byRel := make(map[string]filewalker.FileEntry, len(transEntries))
	for _, e := range transEntries {
		byRel[e.Rel] = e
	}

	var pairedOrig, pairedTrans []filewalker.FileEntry
	for _, e := range origEntries {
		t, ok := byRel[e.Rel]
		if !ok {
			log.Warn().Str("file", e.Rel).Msg("No translated counterpart, skipping")
			stats.Skipped++
			continue
		}
		pairedOrig = append(pairedOrig, e)
		pairedTrans = append(pairedTrans, t)
	}

	origParsed, err := extract.ParseAll(ctx, pairedOrig, h.workers)
	if err != nil {
		return nil, stats, err
	}
	transParsed, err := extract.ParseAll(ctx, pairedTrans, h.workers)
	if err != nil {
		return nil, stats, err
	}

	table := NewTable()
	for i, orig := range origParsed {
		trans := transParsed[i]
		if len(orig.Literals) != len(trans.Literals) {
			log.Warn().
				Str("file", pairedOrig[i].Rel).
				Int("original", len(orig.Literals)).
				Int("translated", len(trans.Literals)).
				Msg("Literal counts differ, skipping")
			stats.Skipped++
			continue
		}
		stats.Files++

		for j, lit := range orig.Literals {
			dst := trans.Literals[j].Text
			if lit.Text == dst || interpolation.IsNoise(lit.Text) {
				continue
			}
			stats.Pairs++
			e := Entry{Source: lit.Text, Translation: dst, Record: lit.Line}
			if !Storable(e) {
				return nil, stats, errs.Validation(pairedOrig[i].Path, lit.Line, "literal contains the %q separator", Separator)
			}
			if table.Add(e) {
				stats.Added++
			} else {
				stats.Duplicates++
			}
		}
	}

	log.Info().
		Int("files", stats.Files).
		Int("skipped", stats.Skipped).
		Int("pairs", stats.Pairs).
		Int("added", stats.Added).
		Msg("Harvest complete")
	return table, stats, nil
}
