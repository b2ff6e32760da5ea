package vocab

import (
	"context"
	"fmt"
	"sync"

	"sci-translator/internal/errs"

	"github.com/rs/zerolog/log"
)

// Store is the vocabulary with an in-memory index over a Backend.
type Store struct {
	backend Backend
	mu      sync.RWMutex
	memory  map[string]string // source → translation
	order   []Entry
}

// NewStore wraps backend and preloads every stored entry.
func NewStore(ctx context.Context, backend Backend) (*Store, error) {
	s := &Store{backend: backend, memory: make(map[string]string)}
	if err := s.Preload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Preload replaces the in-memory index with the backend contents.
func (s *Store) Preload(ctx context.Context) error {
	entries, err := s.backend.All(ctx)
	if err != nil {
		return fmt.Errorf("preload vocabulary: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory = make(map[string]string, len(entries))
	s.order = entries
	for _, e := range entries {
		s.memory[e.Source] = e.Translation
	}

	log.Debug().Int("count", len(entries)).Msg("Preloaded vocabulary")
	return nil
}

// Get returns the stored translation of source.
func (s *Store) Get(source string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.memory[source]
	return v, ok
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Entries returns the stored entries in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.order...)
}

// Close releases the backend.
func (s *Store) Close() error { return s.backend.Close() }

// Validate splits candidates into the entries that would be stored and the
// rejected ones. Nothing is written.
func (s *Store) Validate(candidates []Candidate) (accepted []Entry, rejected []Rejection) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c.malformed {
			rejected = append(rejected, Rejection{Candidate: c, Reason: Malformed})
			continue
		}
		e := normalize(c.Entry)
		if reason, ok := check(e); !ok {
			rejected = append(rejected, Rejection{Candidate: Candidate{Entry: e, Line: c.Line}, Reason: reason})
			continue
		}
		if _, stored := s.memory[e.Source]; stored || seen[e.Source] {
			rejected = append(rejected, Rejection{Candidate: Candidate{Entry: e, Line: c.Line}, Reason: Duplicate})
			continue
		}
		seen[e.Source] = true
		accepted = append(accepted, e)
	}
	return accepted, rejected
}

// ImportResult reports what an import stored and refused.
type ImportResult struct {
	Imported []Entry
	Rejected []Rejection
}

// Import validates candidates and stores the accepted ones. In strict mode
// any rejection aborts the whole batch with a ValidationError and nothing is
// stored.
func (s *Store) Import(ctx context.Context, candidates []Candidate, strict bool) (*ImportResult, error) {
	accepted, rejected := s.Validate(candidates)
	result := &ImportResult{Rejected: rejected}

	for _, r := range rejected {
		log.Warn().Int("line", r.Line).Str("source", r.Source).Str("reason", string(r.Reason)).Msg("Rejected vocabulary entry")
	}
	if strict && len(rejected) > 0 {
		return result, errs.Validation("", rejected[0].Line, "%d of %d vocabulary entries rejected, first: %s",
			len(rejected), len(candidates), rejected[0].Reason)
	}
	if len(accepted) == 0 {
		return result, nil
	}

	if err := s.backend.Insert(ctx, accepted); err != nil {
		return result, fmt.Errorf("store vocabulary: %w", err)
	}

	s.mu.Lock()
	for _, e := range accepted {
		s.memory[e.Source] = e.Translation
		s.order = append(s.order, e)
	}
	s.mu.Unlock()

	result.Imported = accepted
	log.Info().Int("imported", len(accepted)).Int("rejected", len(rejected)).Msg("Imported vocabulary")
	return result, nil
}
