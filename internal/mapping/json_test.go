package mapping

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sci-translator/internal/errs"
)

func TestNewDocument(t *testing.T) {
	// given
	tbl := newTestTable(
		"You have %d points", "Yesh lecha %d nekudot",
		"Hello %s", "Shalom %s %w1",
	)
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("IST", 2*3600))

	// when
	doc := NewDocument(tbl, ExportOptions{GameName: "KQ6", SourceLanguage: "en", TargetLanguage: "he", Now: now})

	// then
	if doc.Version != DocumentVersion || doc.Metadata.ContentType != "messages" {
		t.Errorf("header = %q / %q", doc.Version, doc.Metadata.ContentType)
	}
	if doc.Metadata.ExtractedDate != "2024-03-01T10:30:00Z" {
		t.Errorf("ExtractedDate = %q", doc.Metadata.ExtractedDate)
	}
	if doc.Metadata.TotalMessages != 2 || len(doc.Messages) != 2 {
		t.Fatalf("messages = %d/%d, want 2", doc.Metadata.TotalMessages, len(doc.Messages))
	}
	second := doc.Messages[1]
	if second.MessageNumber != 2 || strings.Join(second.Placeholders, ",") != "%s,%w1" {
		t.Errorf("second message = %+v", second)
	}
}

func TestExportJSON_ApplyReviewed(t *testing.T) {
	// given an exported document a reviewer edited
	path := filepath.Join(t.TempDir(), "messages.json")
	tbl := newTestTable("Open", "Ptach", "Close", "Sgor")
	if err := ExportJSON(tbl, path, ExportOptions{GameName: "SQ3"}); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	doc.Messages[1].Translation = "Sgor et hadelet"
	doc.Messages = append(doc.Messages, Message{MessageNumber: 3, Original: "Unknown", Translation: "X"})

	// when
	stats := Apply(tbl, doc)

	// then
	want := ApplyStats{Updated: 1, Unchanged: 1, Unknown: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if got, _ := tbl.Get("Close"); got != "Sgor et hadelet" {
		t.Errorf("Close = %q", got)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len = %d, unknown message was added", tbl.Len())
	}
}

func TestReadDocument_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	_, err := ReadDocument(path)

	if !errs.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
