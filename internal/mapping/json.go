package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"sci-translator/internal/errs"
	"sci-translator/internal/interpolation"

	"github.com/rs/zerolog/log"
)

// DocumentVersion is written to every exported messages document.
const DocumentVersion = "1.0"

// Document is the messages.json review format.
type Document struct {
	Version  string    `json:"version"`
	Metadata Metadata  `json:"metadata"`
	Messages []Message `json:"messages"`
}

// Metadata describes the exported table.
type Metadata struct {
	GameName       string `json:"gameName"`
	ContentType    string `json:"contentType"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	ExtractedDate  string `json:"extractedDate"`
	TotalMessages  int    `json:"totalMessages"`
}

// Message is one exported entry. Placeholders is the union of the
// placeholders found in the original and the translation.
type Message struct {
	MessageNumber int      `json:"messageNumber"`
	Original      string   `json:"original"`
	Translation   string   `json:"translation"`
	Notes         string   `json:"notes"`
	Placeholders  []string `json:"placeholders"`
}

// ExportOptions fills the document metadata.
type ExportOptions struct {
	GameName       string
	SourceLanguage string
	TargetLanguage string
	Now            time.Time
}

// NewDocument converts t into a messages document.
func NewDocument(t *Table, opts ExportOptions) *Document {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	doc := &Document{
		Version: DocumentVersion,
		Metadata: Metadata{
			GameName:       opts.GameName,
			ContentType:    "messages",
			SourceLanguage: opts.SourceLanguage,
			TargetLanguage: opts.TargetLanguage,
			ExtractedDate:  opts.Now.UTC().Format(time.RFC3339),
			TotalMessages:  t.Len(),
		},
		Messages: make([]Message, 0, t.Len()),
	}
	for i, e := range t.entries {
		doc.Messages = append(doc.Messages, Message{
			MessageNumber: i + 1,
			Original:      e.Source,
			Translation:   e.Translation,
			Placeholders:  interpolation.Union(interpolation.Find(e.Source), interpolation.Find(e.Translation)),
		})
	}
	return doc
}

// ExportJSON writes t as an indented messages document.
func ExportJSON(t *Table, path string, opts ExportOptions) error {
	data, err := json.MarshalIndent(NewDocument(t, opts), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errs.IO("write", path, err)
	}
	log.Info().Str("path", path).Int("messages", t.Len()).Msg("Exported messages document")
	return nil
}

// ReadDocument loads a messages document.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.IO("read", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.Validation(path, 0, "invalid messages document: %v", err)
	}
	return &doc, nil
}

// ApplyStats summarizes an Apply call.
type ApplyStats struct {
	Updated   int
	Unchanged int
	Unknown   int
}

// Apply copies reviewed translations from doc into t. Messages whose
// original is not in t are counted and logged, never added.
func Apply(t *Table, doc *Document) ApplyStats {
	var stats ApplyStats
	for _, m := range doc.Messages {
		current, ok := t.Get(m.Original)
		switch {
		case !ok:
			stats.Unknown++
			log.Warn().Int("message", m.MessageNumber).Str("original", m.Original).Msg("Reviewed message not in table")
		case current == m.Translation || m.Translation == "":
			stats.Unchanged++
		default:
			t.Set(m.Original, m.Translation)
			stats.Updated++
		}
	}
	log.Info().Int("updated", stats.Updated).Int("unchanged", stats.Unchanged).Int("unknown", stats.Unknown).Msg("Applied reviewed messages")
	return stats
}
