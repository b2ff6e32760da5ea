package mapping

import (
	"os"
	"strings"

	"sci-translator/internal/errs"
	"sci-translator/internal/extract"
	"sci-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// IgnoreMarker at the start of a translated line or block drops that
// position from the table.
const IgnoreMarker = "###IGNORE###"

// ReadList reads a list file written by the extractor. In multi-line mode
// each block ends with a Sentinel line and its lines are joined with the
// line-break marker; an empty block is kept as an empty entry so positions
// stay aligned.
func ReadList(path string, multiline bool) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.IO("read list", path, err)
	}
	return splitList(string(data), multiline), nil
}

func splitList(content string, multiline bool) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if !multiline {
		return lines
	}

	var (
		items []string
		block []string
	)
	for _, line := range lines {
		if line == extract.Sentinel {
			items = append(items, strings.Join(block, textutil.LineBreakMarker))
			block = block[:0]
			continue
		}
		block = append(block, line)
	}
	if strings.TrimSpace(strings.Join(block, "")) != "" {
		items = append(items, strings.Join(block, textutil.LineBreakMarker))
	}
	return items
}

// BuildStats summarizes a Build call.
type BuildStats struct {
	Pairs        int
	Added        int
	Ignored      int
	Untranslated int
	Duplicates   int
}

// Build pairs sources with translations by position into a new table.
// Differing counts are a ValidationError naming both files, as is a record
// containing the separator.
func Build(sources, translations []string, sourceFile, translatedFile string) (*Table, BuildStats, error) {
	var stats BuildStats
	if len(sources) != len(translations) {
		return nil, stats, errs.Validation(translatedFile, 0,
			"%d translations for %d source entries in %s", len(translations), len(sources), sourceFile)
	}

	t := NewTable()
	for i, src := range sources {
		stats.Pairs++
		dst := translations[i]
		switch {
		case strings.HasPrefix(dst, IgnoreMarker):
			stats.Ignored++
			continue
		case strings.TrimSpace(dst) == "" || strings.TrimSpace(src) == "":
			stats.Untranslated++
			continue
		}
		e := Entry{Source: src, Translation: dst, Record: i + 1}
		if !Storable(e) {
			return nil, stats, errs.Validation(translatedFile, i+1, "record contains the %q separator", Separator)
		}
		if t.Add(e) {
			stats.Added++
		} else {
			stats.Duplicates++
		}
	}

	log.Info().
		Int("pairs", stats.Pairs).
		Int("added", stats.Added).
		Int("ignored", stats.Ignored).
		Int("untranslated", stats.Untranslated).
		Int("duplicates", stats.Duplicates).
		Msg("Built mapping table")
	return t, stats, nil
}

// BuildFiles reads both lists and builds the table from them.
func BuildFiles(sourcePath, translatedPath string, multiline bool) (*Table, BuildStats, error) {
	sources, err := ReadList(sourcePath, multiline)
	if err != nil {
		return nil, BuildStats{}, err
	}
	translations, err := ReadList(translatedPath, multiline)
	if err != nil {
		return nil, BuildStats{}, err
	}
	return Build(sources, translations, sourcePath, translatedPath)
}

// Write saves t to path. With appendMode the existing table at path is
// loaded first and t's entries are merged after it, earlier entries winning.
func Write(t *Table, path string, appendMode bool) (int, error) {
	if !appendMode {
		return t.Len(), t.Save(path)
	}
	existing, err := LoadOrEmpty(path)
	if err != nil {
		return 0, err
	}
	added := existing.Merge(t)
	log.Info().Str("path", path).Int("existing", existing.Len()-added).Int("added", added).Msg("Appending to mapping table")
	return added, existing.Save(path)
}
