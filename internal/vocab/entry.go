// Package vocab keeps the cross-title vocabulary of single-word
// translations.
package vocab

import (
	"fmt"
	"strings"
	"unicode"
)

// Entry is a one-token source and its one-token translation.
type Entry struct {
	Source      string
	Translation string
}

// Reason explains why a candidate was not stored.
type Reason string

const (
	Duplicate Reason = "duplicate"
	MultiWord Reason = "multi-word"
	Empty     Reason = "empty"
	Malformed Reason = "malformed"
)

// Candidate is an entry read from a candidate file with its line number.
type Candidate struct {
	Entry
	Line int

	malformed bool
}

// Rejection is a candidate refused by validation.
type Rejection struct {
	Candidate
	Reason Reason
}

func (r Rejection) String() string {
	return fmt.Sprintf("line %d: %s (%q -> %q)", r.Line, r.Reason, r.Source, r.Translation)
}

// check validates the shape of a single candidate. Duplicates need the
// store and are handled there.
func check(e Entry) (Reason, bool) {
	if e.Source == "" || e.Translation == "" {
		return Empty, false
	}
	if strings.ContainsFunc(e.Source, unicode.IsSpace) || strings.ContainsFunc(e.Translation, unicode.IsSpace) {
		return MultiWord, false
	}
	return "", true
}

func normalize(e Entry) Entry {
	return Entry{Source: strings.TrimSpace(e.Source), Translation: strings.TrimSpace(e.Translation)}
}
