package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sci-translator/internal/config"
	"sci-translator/internal/errs"
	"sci-translator/internal/filewalker"
	"sci-translator/internal/parser"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application and exits with the mapped status.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, cancel := setupContext()
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(ExitCode(err))
	}
}

// app carries the resolved configuration to every subcommand.
type app struct {
	cfg *config.Config
}

// NewRootCommand creates the root command with every subcommand attached.
// Exported for tests (SetArgs/SetOut).
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sci-translator",
		Short: "Localization toolchain for Sierra SCI games",
		Long: `Extracts the strings of decompiled SCI scripts and text resources,
pairs them with translations, and writes a translated copy of the game
files. Also keeps a vocabulary shared across titles.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultProjectFile, "Project config file")

	rootCmd.AddCommand(
		newExtractCommand(a),
		newMapCommand(a),
		newHarvestCommand(a),
		newExportJSONCommand(a),
		newImportJSONCommand(a),
		newSplitCommand(a),
		newSubstituteCommand(a),
		newFindCommand(a),
		newTEXToTSVCommand(a),
		newTSVToTEXCommand(a),
		newVocabCommand(a),
	)

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := config.Load()
	path, _ := cmd.Flags().GetString("config")
	pc, err := config.LoadProject(path)
	if err != nil {
		return err
	}
	cfg.Apply(pc)
	a.cfg = cfg
	return nil
}

// stringFlag returns the flag value, or fallback when the flag is unset.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return fallback
}

// walker builds a corpus walker from the corpus flags layered over config.
func (a *app) walker(cmd *cobra.Command) (*filewalker.Walker, filewalker.Options, error) {
	delim, err := parser.ParseDelimiter(stringFlag(cmd, "delimiter", a.cfg.Delimiter))
	if err != nil {
		return nil, filewalker.Options{}, errs.Validation("", 0, "%v", err)
	}
	cfg := *a.cfg
	cfg.SourceEncoding = stringFlag(cmd, "encoding", a.cfg.SourceEncoding)
	cfg.TargetEncoding = stringFlag(cmd, "encoding-out", a.cfg.TargetEncoding)
	if err := cfg.Validate(); err != nil {
		return nil, filewalker.Options{}, err
	}

	opts := filewalker.Options{
		Delimiter:      delim,
		SourceEncoding: cfg.SourceEncoding,
		TargetEncoding: cfg.TargetEncoding,
	}
	return filewalker.NewWalker(opts), opts, nil
}

func addCorpusFlags(cmd *cobra.Command, withOutput bool) {
	cmd.Flags().String("delimiter", "", "Script literal delimiter: braces or quotes")
	cmd.Flags().String("encoding", "", "Code page of the corpus (default from SOURCE_ENCODING)")
	if withOutput {
		cmd.Flags().String("encoding-out", "", "Code page of written files (default from TARGET_ENCODING)")
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
