package vocab

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sci-translator/internal/errs"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	store, err := NewStore(context.Background(), backend)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func candidates(pairs ...string) []Candidate {
	var out []Candidate
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Candidate{Entry: Entry{Source: pairs[i], Translation: pairs[i+1]}, Line: i/2 + 1})
	}
	return out
}

func TestImport_RejectsAndStores(t *testing.T) {
	// given
	store := setupTestStore(t)
	ctx := context.Background()

	// when
	res, err := store.Import(ctx, candidates(
		"door", "delet",
		"red door", "delet aduma",
		"key", "",
		"door", "petach",
		" lamp ", "menora",
	), false)

	// then
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Imported) != 2 {
		t.Fatalf("imported %d, want 2: %+v", len(res.Imported), res.Imported)
	}
	wantReasons := []Reason{MultiWord, Empty, Duplicate}
	if len(res.Rejected) != len(wantReasons) {
		t.Fatalf("rejected = %v", res.Rejected)
	}
	for i, r := range wantReasons {
		if res.Rejected[i].Reason != r {
			t.Errorf("rejection %d = %s, want %s", i, res.Rejected[i].Reason, r)
		}
	}
	if got, _ := store.Get("lamp"); got != "menora" {
		t.Errorf("lamp = %q, want trimmed entry", got)
	}
}

func TestImport_DuplicateOfStoredEntry(t *testing.T) {
	// given
	store := setupTestStore(t)
	ctx := context.Background()
	if _, err := store.Import(ctx, candidates("door", "delet"), false); err != nil {
		t.Fatal(err)
	}

	// when
	res, err := store.Import(ctx, candidates("door", "shaar", "gate", "shaar"), false)

	// then
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Rejected) != 1 || res.Rejected[0].Reason != Duplicate {
		t.Errorf("rejected = %v", res.Rejected)
	}
	if got, _ := store.Get("door"); got != "delet" {
		t.Errorf("door = %q, stored entry overwritten", got)
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

func TestImport_StrictImportsNothing(t *testing.T) {
	// given
	store := setupTestStore(t)

	// when
	res, err := store.Import(context.Background(), candidates("door", "delet", "two words", "shtei milim"), true)

	// then
	if !errs.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(res.Imported) != 0 || store.Len() != 0 {
		t.Errorf("strict import stored entries: %+v", store.Entries())
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "vocabulary.db")
	ctx := context.Background()
	store, err := Open(ctx, path, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Import(ctx, candidates("door", "delet", "key", "mafteach"), false); err != nil {
		t.Fatal(err)
	}
	store.Close()

	// when
	reopened, err := Open(ctx, path, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	// then
	entries := reopened.Entries()
	if len(entries) != 2 || entries[0].Source != "door" || entries[1].Source != "key" {
		t.Errorf("entries = %+v, want insertion order", entries)
	}
}

func TestReadCandidatesAndExport(t *testing.T) {
	// given
	dir := t.TempDir()
	in := filepath.Join(dir, "candidates.tsv")
	content := TSVHeader + "\ndoor\tdelet\n\nbroken line\nkey\tmafteach\textra\nlamp\tmenora\r\n"
	if err := os.WriteFile(in, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	store := setupTestStore(t)

	// when
	cands, err := ReadCandidates(in)
	if err != nil {
		t.Fatalf("ReadCandidates: %v", err)
	}
	res, err := store.Import(context.Background(), cands, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	out := filepath.Join(dir, "export.tsv")
	if err := store.ExportTSV(context.Background(), out); err != nil {
		t.Fatalf("ExportTSV: %v", err)
	}

	// then
	if len(res.Rejected) != 2 || res.Rejected[0].Reason != Malformed || res.Rejected[0].Line != 4 {
		t.Errorf("rejected = %v", res.Rejected)
	}
	data, _ := os.ReadFile(out)
	want := TSVHeader + "\ndoor\tdelet\nlamp\tmenora\n"
	if string(data) != want {
		t.Errorf("export = %q, want %q", data, want)
	}
}

func TestReadCandidates_Missing(t *testing.T) {
	_, err := ReadCandidates(filepath.Join(t.TempDir(), "none.tsv"))
	if !errs.IsIO(err) {
		t.Fatalf("expected IOError, got %v", err)
	}
}
