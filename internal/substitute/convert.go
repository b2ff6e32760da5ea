package substitute

import (
	"os"

	"sci-translator/internal/errs"
	"sci-translator/internal/parser"

	"github.com/rs/zerolog/log"
)

// TEXToTSV converts a TEX resource decoded with encoding into a UTF-8 table.
func TEXToTSV(inPath, outPath, encoding string) (int, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, errs.IO("read", inPath, err)
	}
	header, texts, err := parser.DecodeTEX(data, encoding)
	if err != nil {
		return 0, errs.Validation(inPath, 0, "%v", err)
	}
	if !header {
		log.Warn().Str("path", inPath).Msg("TEX resource has no header")
	}
	if err := os.WriteFile(outPath, parser.TEXToTSV(texts), 0644); err != nil {
		return 0, errs.IO("write", outPath, err)
	}
	log.Info().Str("path", outPath).Int("strings", len(texts)).Msg("Converted TEX to TSV")
	return len(texts), nil
}

// TSVToTEX rebuilds a TEX resource from one column of a UTF-8 table.
func TSVToTEX(inPath, outPath string, column int, encoding string) (int, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, errs.IO("read", inPath, err)
	}
	texts := parser.TSVToTEX(string(data), column)
	out, err := parser.EncodeTEX(texts, encoding)
	if err != nil {
		return 0, errs.Validation(inPath, 0, "%v", err)
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return 0, errs.IO("write", outPath, err)
	}
	log.Info().Str("path", outPath).Int("strings", len(texts)).Msg("Converted TSV to TEX")
	return len(texts), nil
}
