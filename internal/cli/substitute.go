package cli

import (
	"sci-translator/internal/mapping"
	"sci-translator/internal/parser"
	"sci-translator/internal/substitute"

	"github.com/spf13/cobra"
)

func newSubstituteCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "substitute <corpus> <output-dir> <table>",
		Short: "Write a translated copy of the corpus",
		Long: `Replaces every literal that has a table entry with its translation and
writes each corpus file to the same relative path under the output
directory. Literals without an entry are kept and reported.`,
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, _, err := a.walker(cmd)
			if err != nil {
				return err
			}
			tbl, err := mapping.Load(args[2])
			if err != nil {
				return err
			}

			report, err := substitute.NewEngine(w, tbl, a.cfg.WorkerCount).Run(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
				if err := substitute.WriteReport(reportPath, report.Warnings); err != nil {
					return err
				}
			}

			printf(cmd, "%d files written (%d changed), %d of %d literals translated (%.1f%%)\n",
				report.Files, report.Changed, report.Translated, report.Translated+report.Untranslated, report.Coverage())
			return nil
		},
	}

	addCorpusFlags(cmd, true)
	cmd.Flags().String("report", "", "Write untranslated literals to this TSV file")
	return cmd
}

func newFindCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <corpus>",
		Short: "List corpus lines that already contain target-script letters",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.TargetScript = stringFlag(cmd, "script", a.cfg.TargetScript)
			script, err := a.cfg.Script()
			if err != nil {
				return err
			}
			w, _, err := a.walker(cmd)
			if err != nil {
				return err
			}

			matches, err := substitute.Find(cmd.Context(), w, args[0], script, a.cfg.WorkerCount)
			if err != nil {
				return err
			}
			for _, m := range matches {
				printf(cmd, "%s\n", m)
			}
			return nil
		},
	}

	addCorpusFlags(cmd, false)
	cmd.Flags().String("script", "", "Script to look for (default from TARGET_SCRIPT)")
	return cmd
}

func newTEXToTSVCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tex2tsv <in.tex> <out.tsv>",
		Short: "Convert a TEX text resource into an editable table",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := substitute.TEXToTSV(args[0], args[1], stringFlag(cmd, "encoding", a.cfg.SourceEncoding))
			if err != nil {
				return err
			}
			printf(cmd, "%d strings\n", n)
			return nil
		},
	}

	cmd.Flags().String("encoding", "", "Code page of the resource (default from SOURCE_ENCODING)")
	return cmd
}

func newTSVToTEXCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tsv2tex <in.tsv> <out.tex>",
		Short: "Rebuild a TEX text resource from one column of a table",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, _ := cmd.Flags().GetInt("column")
			n, err := substitute.TSVToTEX(args[0], args[1], column, stringFlag(cmd, "encoding-out", a.cfg.TargetEncoding))
			if err != nil {
				return err
			}
			printf(cmd, "%d strings\n", n)
			return nil
		},
	}

	cmd.Flags().Int("column", parser.TSVTextColumn, "Zero-based column holding the text")
	cmd.Flags().String("encoding-out", "", "Code page of the resource (default from TARGET_ENCODING)")
	return cmd
}
