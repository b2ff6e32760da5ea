// Package mapping builds, persists and queries source-to-translation tables.
package mapping

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sci-translator/internal/errs"
	"sci-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Separator splits a table record into source and translation.
const Separator = " === "

// Entry is one source/translation pair. Line breaks are held as the
// literal marker on both sides.
type Entry struct {
	Source      string `json:"source"`
	Translation string `json:"translation"`
	// Record is the 1-based position the entry came from (table line or
	// list position); zero for entries built in memory.
	Record int `json:"-"`
}

// Table is an ordered mapping with unique sources. The first entry added
// for a source wins; later ones are dropped and logged.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add appends e unless its source is already present. It reports whether
// the entry was kept.
func (t *Table) Add(e Entry) bool {
	e.Source = textutil.EscapeLineBreaks(e.Source)
	e.Translation = textutil.EscapeLineBreaks(e.Translation)

	if i, exists := t.index[e.Source]; exists {
		kept := t.entries[i]
		log.Warn().
			Str("source", textutil.Truncate(e.Source, 40)).
			Int("record", e.Record).
			Int("kept_record", kept.Record).
			Bool("same_translation", kept.Translation == e.Translation).
			Msg("Dropped duplicate mapping entry")
		return false
	}
	t.index[e.Source] = len(t.entries)
	t.entries = append(t.entries, e)
	return true
}

// Set replaces the translation of an existing source. It reports whether the
// source was present.
func (t *Table) Set(source, translation string) bool {
	i, ok := t.index[textutil.EscapeLineBreaks(source)]
	if !ok {
		return false
	}
	t.entries[i].Translation = textutil.EscapeLineBreaks(translation)
	return true
}

// Get returns the translation stored for an exact source.
func (t *Table) Get(source string) (string, bool) {
	i, ok := t.index[source]
	if !ok {
		return "", false
	}
	return t.entries[i].Translation, true
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in insertion order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// LongestFirst returns the entries ordered by descending source length,
// ties kept in insertion order.
func (t *Table) LongestFirst() []Entry {
	out := t.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Source) > len(out[j].Source)
	})
	return out
}

// Load reads a table file. Blank lines and lines without the separator are
// skipped; records with an empty side are untranslated and skipped too.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open mapping", path, err)
	}
	defer f.Close()

	t := NewTable()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		source, translation, ok := splitRecord(line)
		if !ok {
			log.Debug().Str("path", path).Int("line", lineNum).Msg("Skipped line without separator")
			continue
		}
		if source == "" || translation == "" {
			log.Debug().Str("path", path).Int("line", lineNum).Msg("Skipped untranslated record")
			continue
		}
		t.Add(Entry{Source: source, Translation: translation, Record: lineNum})
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.IO("read mapping", path, err)
	}

	log.Info().Str("path", path).Int("entries", t.Len()).Msg("Loaded mapping table")
	return t, nil
}

// LoadOrEmpty is Load, except a missing file yields an empty table.
func LoadOrEmpty(path string) (*Table, error) {
	t, err := Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return NewTable(), nil
	}
	return t, err
}

// Storable reports whether e survives a Save/Load round trip, that is
// whether the separator cannot be confused with either side.
func Storable(e Entry) bool {
	src := textutil.EscapeLineBreaks(e.Source)
	dst := textutil.EscapeLineBreaks(e.Translation)
	gotSrc, gotDst, ok := splitRecord(src + Separator + dst)
	return ok && gotSrc == src && gotDst == dst
}

func splitRecord(line string) (source, translation string, ok bool) {
	if i := strings.Index(line, Separator); i >= 0 {
		return line[:i], line[i+len(Separator):], true
	}
	if strings.HasSuffix(line, strings.TrimRight(Separator, " ")) {
		return strings.TrimSuffix(line, strings.TrimRight(Separator, " ")), "", true
	}
	return "", "", false
}

// Save writes the table to path through a temporary file, so a failed
// write never leaves a truncated table behind.
func (t *Table) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.IO("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".mapping-*")
	if err != nil {
		return errs.IO("create", path, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, e := range t.entries {
		fmt.Fprintf(w, "%s%s%s\n", e.Source, Separator, e.Translation)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return errs.IO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errs.IO("write", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errs.IO("replace", path, err)
	}

	log.Info().Str("path", path).Int("entries", t.Len()).Msg("Saved mapping table")
	return nil
}

// Merge adds every entry of other after the existing ones and returns how
// many were new.
func (t *Table) Merge(other *Table) int {
	added := 0
	for _, e := range other.entries {
		if t.Add(e) {
			added++
		}
	}
	return added
}
