package cli

import (
	"sci-translator/internal/extract"

	"github.com/spf13/cobra"
)

func newExtractCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <corpus> <single-out> <multi-out> <format-out>",
		Short: "Extract translatable strings into three list files",
		Long: `Walks the corpus, collects every string literal once, and writes
single-line strings, multi-line blocks (each closed by a ===== line) and
strings with format placeholders to separate lists.`,
		Args: exactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, singleOut, multiOut, formatOut := args[0], args[1], args[2], args[3]

			w, _, err := a.walker(cmd)
			if err != nil {
				return err
			}
			occurrencesOut, _ := cmd.Flags().GetString("occurrences")
			outputs := []string{singleOut, multiOut, formatOut}
			if occurrencesOut != "" {
				outputs = append(outputs, occurrencesOut)
			}
			if err := extract.CheckOutputs(w, corpus, outputs...); err != nil {
				return err
			}

			res, err := extract.NewExtractor(w, a.cfg.WorkerCount).Run(cmd.Context(), corpus)
			if err != nil {
				return err
			}

			if err := extract.WriteList(singleOut, res.ByCategory(extract.Single), false); err != nil {
				return err
			}
			if err := extract.WriteList(multiOut, res.ByCategory(extract.Multi), true); err != nil {
				return err
			}
			if err := extract.WriteList(formatOut, res.ByCategory(extract.Format), false); err != nil {
				return err
			}
			if occurrencesOut != "" {
				if err := extract.WriteOccurrences(occurrencesOut, corpus, res.Literals); err != nil {
					return err
				}
			}

			printf(cmd, "%d files, %d unique strings (%d single, %d multi-line, %d format)\n",
				res.Files, len(res.Strings),
				len(res.ByCategory(extract.Single)), len(res.ByCategory(extract.Multi)), len(res.ByCategory(extract.Format)))
			return nil
		},
	}

	addCorpusFlags(cmd, false)
	cmd.Flags().String("occurrences", "", "Also write every occurrence with its file and line to this path")
	return cmd
}
