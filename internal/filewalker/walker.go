package filewalker

import (
	"fmt"
	"os"
	"path/filepath"

	"sci-translator/internal/parser"

	"github.com/rs/zerolog/log"
)

// Options configures the parsers a Walker dispatches to.
type Options struct {
	Delimiter      parser.Delimiter
	SourceEncoding string
	TargetEncoding string
}

// Walker traverses directories and dispatches files to the correct parser.
type Walker struct {
	parsers []parser.Parser
}

// NewWalker creates a Walker with the script, table and text resource parsers.
func NewWalker(opts Options) *Walker {
	return &Walker{
		parsers: []parser.Parser{
			parser.NewScriptParser(opts.Delimiter, opts.SourceEncoding, opts.TargetEncoding),
			parser.NewTSVParser(parser.TSVTextColumn),
			parser.NewTEXParser(opts.SourceEncoding, opts.TargetEncoding),
		},
	}
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path string
	// Rel is Path relative to the walked root, used to mirror output trees.
	Rel    string
	Parser parser.Parser
}

// Walk discovers all supported files under root in lexical order.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if d.IsDir() {
			return nil
		}

		p := w.parserFor(path)
		if p == nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", path, err)
		}
		entries = append(entries, FileEntry{Path: path, Rel: rel, Parser: p})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}

// Claims reports whether some parser would pick up path during a walk.
func (w *Walker) Claims(path string) bool {
	return w.parserFor(path) != nil
}

func (w *Walker) parserFor(path string) parser.Parser {
	for _, p := range w.parsers {
		if p.CanParse(path) {
			return p
		}
	}
	return nil
}
