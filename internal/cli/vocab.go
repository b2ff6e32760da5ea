package cli

import (
	"sci-translator/internal/errs"
	"sci-translator/internal/vocab"

	"github.com/spf13/cobra"
)

func newVocabCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Manage the shared single-word vocabulary",
	}

	cmd.PersistentFlags().String("db", "", "sqlite vocabulary file (default from VOCAB_DB; ignored when VOCAB_DATABASE_URL is set)")

	cmd.AddCommand(
		newVocabImportCommand(a),
		newVocabExportCommand(a),
		newVocabCheckCommand(a),
	)
	return cmd
}

func (a *app) openVocab(cmd *cobra.Command) (*vocab.Store, error) {
	return vocab.Open(cmd.Context(), stringFlag(cmd, "db", a.cfg.VocabDB), a.cfg.VocabDatabaseURL)
}

func printRejections(cmd *cobra.Command, rejected []vocab.Rejection) {
	for _, r := range rejected {
		printf(cmd, "rejected %s\n", r)
	}
}

func newVocabImportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <candidates.tsv>",
		Short: "Add candidate entries to the vocabulary",
		Long: `Reads source<TAB>translation rows and stores the valid ones. Duplicates,
multi-word and empty entries are rejected and listed. With --strict any
rejection aborts the import and nothing is stored.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")

			candidates, err := vocab.ReadCandidates(args[0])
			if err != nil {
				return err
			}
			store, err := a.openVocab(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := store.Import(cmd.Context(), candidates, strict)
			if res != nil {
				printRejections(cmd, res.Rejected)
			}
			if err != nil {
				return err
			}
			printf(cmd, "%d imported, %d rejected\n", len(res.Imported), len(res.Rejected))
			return nil
		},
	}

	cmd.Flags().Bool("strict", false, "Import nothing when any entry is rejected")
	return cmd
}

func newVocabExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <out.tsv>",
		Short: "Write the vocabulary as a TSV file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openVocab(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.ExportTSV(cmd.Context(), args[0])
		},
	}
}

func newVocabCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <candidates.tsv>",
		Short: "Validate candidate entries without storing them",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := vocab.ReadCandidates(args[0])
			if err != nil {
				return err
			}
			store, err := a.openVocab(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			accepted, rejected := store.Validate(candidates)
			printRejections(cmd, rejected)
			printf(cmd, "%d acceptable, %d rejected\n", len(accepted), len(rejected))
			if len(rejected) > 0 {
				return errs.Validation(args[0], rejected[0].Line, "%d entries rejected", len(rejected))
			}
			return nil
		},
	}
}
