package cli

import (
	"sci-translator/internal/errs"
	"sci-translator/internal/filewalker"
	"sci-translator/internal/mapping"

	"github.com/spf13/cobra"
)

func newMapCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map <source-list> <translated-list> <table>",
		Short: "Pair a list with its translation into a mapping table",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			multiline, _ := cmd.Flags().GetBool("multiline")
			appendMode, _ := cmd.Flags().GetBool("append")

			tbl, stats, err := mapping.BuildFiles(args[0], args[1], multiline)
			if err != nil {
				return err
			}
			mapping.CheckPlaceholders(tbl)

			added, err := mapping.Write(tbl, args[2], appendMode)
			if err != nil {
				return err
			}
			printf(cmd, "%d pairs, %d entries written, %d ignored, %d untranslated, %d duplicates\n",
				stats.Pairs, added, stats.Ignored, stats.Untranslated, stats.Duplicates)
			return nil
		},
	}

	cmd.Flags().Bool("multiline", false, "Lists hold ===== terminated blocks")
	cmd.Flags().Bool("append", false, "Merge into an existing table instead of replacing it")
	return cmd
}

func newHarvestCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest <original-corpus> <translated-corpus> <table>",
		Short: "Recover mapping entries from a hand-translated copy of a corpus",
		Long: `Pairs the literals of each original file with the literals at the same
positions in its translated copy and appends the differing pairs to the
table. Files whose literal counts differ are skipped.`,
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, opts, err := a.walker(cmd)
			if err != nil {
				return err
			}
			translatedOpts := opts
			translatedOpts.SourceEncoding = opts.TargetEncoding
			translated := filewalker.NewWalker(translatedOpts)

			tbl, stats, err := mapping.NewHarvester(original, translated, a.cfg.WorkerCount).
				Harvest(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			added, err := mapping.Write(tbl, args[2], true)
			if err != nil {
				return err
			}
			printf(cmd, "%d files paired, %d skipped, %d entries added\n", stats.Files, stats.Skipped, added)
			return nil
		},
	}

	addCorpusFlags(cmd, true)
	return cmd
}

func newExportJSONCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json <table> <out.json>",
		Short: "Export a mapping table as a messages.json review document",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := mapping.Load(args[0])
			if err != nil {
				return err
			}
			return mapping.ExportJSON(tbl, args[1], mapping.ExportOptions{
				GameName:       stringFlag(cmd, "game", a.cfg.GameName),
				SourceLanguage: a.cfg.SourceLanguage,
				TargetLanguage: a.cfg.TargetLanguage,
			})
		},
	}

	cmd.Flags().String("game", "", "Game name written to the document metadata")
	return cmd
}

func newImportJSONCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-json <table> <messages.json>",
		Short: "Apply reviewed translations from a messages.json document to a table",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := mapping.Load(args[0])
			if err != nil {
				return err
			}
			doc, err := mapping.ReadDocument(args[1])
			if err != nil {
				return err
			}
			stats := mapping.Apply(tbl, doc)
			if stats.Updated > 0 {
				if err := tbl.Save(args[0]); err != nil {
					return err
				}
			}
			printf(cmd, "%d updated, %d unchanged, %d unknown\n", stats.Updated, stats.Unchanged, stats.Unknown)
			return nil
		},
	}
}

func newSplitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <list> <out-dir>",
		Short: "Cut a list file into numbered parts",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, _ := cmd.Flags().GetInt("lines")
			if lines == 0 {
				lines = a.cfg.SplitLines
			}
			if lines < 0 {
				return errs.Validation("", 0, "--lines must be positive, got %d", lines)
			}
			multiline, _ := cmd.Flags().GetBool("multiline")

			parts, err := mapping.Split(args[0], args[1], lines, multiline)
			if err != nil {
				return err
			}
			for _, p := range parts {
				printf(cmd, "%s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().Int("lines", 0, "Records per part (default from SPLIT_LINES)")
	cmd.Flags().Bool("multiline", false, "Count ===== terminated blocks instead of lines")
	return cmd
}
