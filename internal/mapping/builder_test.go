package mapping

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sci-translator/internal/errs"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		multiline bool
		want      []string
	}{
		{"lines", "a\nb\n", false, []string{"a", "b"}},
		{"no trailing newline", "a\r\nb", false, []string{"a", "b"}},
		{"empty", "", false, nil},
		{"blocks", "One\nTwo\n=====\nThree\n=====\n", true, []string{`One\nTwo`, "Three"}},
		{"empty block kept", "A\n=====\n=====\nB\n=====\n", true, []string{"A", "", "B"}},
		{"unterminated last block", "A\n=====\nB\n", true, []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitList(tt.content, tt.multiline)
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("item %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuild_CountMismatch(t *testing.T) {
	_, _, err := Build([]string{"a", "b"}, []string{"x"}, "src.txt", "dst.txt")

	if !errs.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBuild_SkipsIgnoredAndUntranslated(t *testing.T) {
	// given
	sources := []string{"A", "B", "C", "A", "D"}
	translations := []string{"X", IgnoreMarker + " credits", "", "Y", "Z"}

	// when
	tbl, stats, err := Build(sources, translations, "src", "dst")

	// then
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := BuildStats{Pairs: 5, Added: 2, Ignored: 1, Untranslated: 1, Duplicates: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if got, _ := tbl.Get("A"); got != "X" {
		t.Errorf("A = %q, want X", got)
	}
	if _, ok := tbl.Get("B"); ok {
		t.Error("ignored entry B present")
	}
	if e := tbl.Entries()[1]; e.Source != "D" || e.Record != 5 {
		t.Errorf("second entry = %+v", e)
	}
}

func TestBuild_RejectsSeparatorInRecord(t *testing.T) {
	for name, tc := range map[string]struct{ src, dst string }{
		"in source":          {"a === b", "x"},
		"in translation":     {"a", "x === y"},
		"source ends in ===": {"a ===", "x"},
	} {
		t.Run(name, func(t *testing.T) {
			// when
			_, _, err := Build([]string{"ok", tc.src}, []string{"fine", tc.dst}, "src", "dst.txt")

			// then
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.File != "dst.txt" || verr.Line != 2 {
				t.Errorf("error at %s:%d, want dst.txt:2", verr.File, verr.Line)
			}
		})
	}
}

func TestStorable_RoundTripsThroughSave(t *testing.T) {
	// given
	tbl := NewTable()
	e := Entry{Source: "=== a ==", Translation: "=== b ==="}
	if !Storable(e) {
		t.Fatal("entry should be storable")
	}
	tbl.Add(e)
	path := filepath.Join(t.TempDir(), "map.txt")

	// when
	if err := tbl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)

	// then
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, _ := loaded.Get(e.Source); got != e.Translation {
		t.Errorf("translation = %q, want %q", got, e.Translation)
	}
}

func TestBuildFiles_Multiline(t *testing.T) {
	// given
	dir := t.TempDir()
	src := filepath.Join(dir, "multi.txt")
	dst := filepath.Join(dir, "multi_he.txt")
	os.WriteFile(src, []byte("Line one\nLine two\n=====\nAlone\n=====\n"), 0644)
	os.WriteFile(dst, []byte("Shura achat\nShura shtaim\n=====\nLevad\n=====\n"), 0644)

	// when
	tbl, _, err := BuildFiles(src, dst, true)

	// then
	if err != nil {
		t.Fatalf("BuildFiles: %v", err)
	}
	if got, _ := tbl.Get(`Line one\nLine two`); got != `Shura achat\nShura shtaim` {
		t.Errorf("block = %q", got)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d, want 2", tbl.Len())
	}
}

func TestBuildFiles_MissingList(t *testing.T) {
	_, _, err := BuildFiles(filepath.Join(t.TempDir(), "nope.txt"), "x", false)
	if !errs.IsIO(err) {
		t.Fatalf("expected IOError, got %v", err)
	}
}
