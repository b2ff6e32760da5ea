package substitute

import (
	"bufio"
	"fmt"
	"os"

	"sci-translator/internal/errs"
	"sci-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// ReportHeader is the first line of a coverage report.
const ReportHeader = "file\tline\ttext"

// WriteReport writes coverage warnings as TSV.
func WriteReport(path string, warnings []errs.CoverageWarning) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.IO("create", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, ReportHeader)
	for _, cw := range warnings {
		fmt.Fprintf(w, "%s\t%d\t%s\n", cw.File, cw.Line, textutil.EscapeLineBreaks(cw.Text))
	}
	if err := w.Flush(); err != nil {
		return errs.IO("write", path, err)
	}
	log.Info().Str("path", path).Int("warnings", len(warnings)).Msg("Wrote coverage report")
	return nil
}
