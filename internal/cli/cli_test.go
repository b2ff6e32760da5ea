package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VOCAB_DATABASE_URL", "")
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	// given
	root := NewRootCommand()

	// then
	for _, name := range []string{"extract", "map", "harvest", "export-json", "import-json", "split",
		"substitute", "find", "tex2tsv", "tsv2tex", "vocab"} {
		found, _, err := root.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if !root.SilenceUsage {
		t.Error("SilenceUsage should be set")
	}
	if f := root.PersistentFlags().Lookup("verbose"); f == nil || f.Shorthand != "v" {
		t.Error("--verbose persistent flag missing")
	}
}

func TestPipeline_ExtractMapSubstitute(t *testing.T) {
	// given
	dir := t.TempDir()
	corpus := filepath.Join(dir, "src")
	lists := filepath.Join(dir, "lists")
	write(t, filepath.Join(corpus, "main.sc"),
		"(Print {Hello World})\n(Print {Hello})\n(Print {Line one\nLine two})\n(Print {Score: %d})\n")

	// when extracting
	if _, err := run(t, "extract", corpus,
		filepath.Join(lists, "single.txt"), filepath.Join(lists, "multi.txt"), filepath.Join(lists, "format.txt")); err != nil {
		t.Fatalf("extract: %v", err)
	}

	// then the lists hold each category
	single, _ := os.ReadFile(filepath.Join(lists, "single.txt"))
	if string(single) != "Hello World\nHello\n" {
		t.Errorf("single list = %q", single)
	}
	multi, _ := os.ReadFile(filepath.Join(lists, "multi.txt"))
	if string(multi) != "Line one\nLine two\n=====\n" {
		t.Errorf("multi list = %q", multi)
	}

	// when mapping translated lists
	table := filepath.Join(dir, "mapping.txt")
	write(t, filepath.Join(lists, "single_he.txt"), "Shalom Olam\nShalom\n")
	write(t, filepath.Join(lists, "multi_he.txt"), "Shura achat\nShura shtaim\n=====\n")
	if _, err := run(t, "map", filepath.Join(lists, "single.txt"), filepath.Join(lists, "single_he.txt"), table); err != nil {
		t.Fatalf("map: %v", err)
	}
	if _, err := run(t, "map", "--multiline", "--append",
		filepath.Join(lists, "multi.txt"), filepath.Join(lists, "multi_he.txt"), table); err != nil {
		t.Fatalf("map --append: %v", err)
	}

	// when substituting
	outDir := filepath.Join(dir, "out")
	report := filepath.Join(dir, "coverage.tsv")
	stdout, err := run(t, "substitute", "--report", report, corpus, outDir, table)
	if err != nil {
		t.Fatalf("substitute: %v", err)
	}

	// then
	got, _ := os.ReadFile(filepath.Join(outDir, "main.sc"))
	want := "(Print {Shalom Olam})\n(Print {Shalom})\n(Print {Shura achat\nShura shtaim})\n(Print {Score: %d})\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !strings.Contains(stdout, "3 of 4 literals translated") {
		t.Errorf("stdout = %q", stdout)
	}
	rep, _ := os.ReadFile(report)
	if !strings.Contains(string(rep), "main.sc\t5\tScore: %d") {
		t.Errorf("report = %q", rep)
	}
}

func TestExtract_MalformedCorpusExitsWithValidation(t *testing.T) {
	// given
	dir := t.TempDir()
	write(t, filepath.Join(dir, "src", "bad.sc"), "(Print {never closed)\n")

	// when
	_, err := run(t, "extract", filepath.Join(dir, "src"), filepath.Join(dir, "s"), filepath.Join(dir, "m"), filepath.Join(dir, "f"))

	// then
	if ExitCode(err) != ExitValidation {
		t.Fatalf("exit code = %d (%v), want %d", ExitCode(err), err, ExitValidation)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "s")); !os.IsNotExist(statErr) {
		t.Error("lists written despite malformed corpus")
	}
}

func TestMap_CountMismatchExitsWithValidation(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.txt"), "one\ntwo\n")
	write(t, filepath.Join(dir, "b.txt"), "achat\n")

	_, err := run(t, "map", filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), filepath.Join(dir, "t.txt"))

	if ExitCode(err) != ExitValidation {
		t.Fatalf("exit code = %d (%v), want %d", ExitCode(err), err, ExitValidation)
	}
}

func TestSubstitute_MissingTableExitsWithFailure(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "src", "a.sc"), "(Print {Hi})\n")

	_, err := run(t, "substitute", filepath.Join(dir, "src"), filepath.Join(dir, "out"), filepath.Join(dir, "none.txt"))

	if ExitCode(err) != ExitFailure {
		t.Fatalf("exit code = %d (%v), want %d", ExitCode(err), err, ExitFailure)
	}
}

func TestWrongArgCountExitsWithValidation(t *testing.T) {
	_, err := run(t, "substitute", "only-one")

	if ExitCode(err) != ExitValidation {
		t.Fatalf("exit code = %d (%v), want %d", ExitCode(err), err, ExitValidation)
	}
}

func TestUnknownDelimiterExitsWithValidation(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "extract", "--delimiter", "brackets", dir,
		filepath.Join(dir, "s"), filepath.Join(dir, "m"), filepath.Join(dir, "f"))

	if ExitCode(err) != ExitValidation {
		t.Fatalf("exit code = %d (%v), want %d", ExitCode(err), err, ExitValidation)
	}
}

func TestVocab_ImportCheckExport(t *testing.T) {
	// given
	dir := t.TempDir()
	db := filepath.Join(dir, "vocab.db")
	cands := filepath.Join(dir, "cands.tsv")
	write(t, cands, "source\ttranslation\ndoor\tdelet\nred door\tdelet aduma\n")

	// when importing
	stdout, err := run(t, "vocab", "import", "--db", db, cands)

	// then
	if err != nil {
		t.Fatalf("vocab import: %v", err)
	}
	if !strings.Contains(stdout, "1 imported, 1 rejected") || !strings.Contains(stdout, "multi-word") {
		t.Errorf("stdout = %q", stdout)
	}

	// when checking the same file again, door is now a duplicate
	_, err = run(t, "vocab", "check", "--db", db, cands)
	if ExitCode(err) != ExitValidation {
		t.Errorf("check exit code = %d (%v), want %d", ExitCode(err), err, ExitValidation)
	}

	// when strict importing a bad batch
	_, err = run(t, "vocab", "import", "--db", db, "--strict", cands)
	if ExitCode(err) != ExitValidation {
		t.Errorf("strict import exit code = %d (%v), want %d", ExitCode(err), err, ExitValidation)
	}

	// when exporting
	out := filepath.Join(dir, "export.tsv")
	if _, err := run(t, "vocab", "export", "--db", db, out); err != nil {
		t.Fatalf("vocab export: %v", err)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "source\ttranslation\ndoor\tdelet\n" {
		t.Errorf("export = %q", data)
	}
}
