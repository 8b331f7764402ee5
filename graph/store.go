// Package graph converts investigation records to semantic triples, keeps
// them in an in-memory store, and publishes them for graph ingestion.
package graph

import (
	"reflect"
	"slices"
	"sync"

	"github.com/c360studio/semstreams/message"
)

// Store is an in-memory triple store with set semantics: a triple is kept
// once per (subject, predicate, object). It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	triples []message.Triple
	objects map[subjectPredicate][]any
}

type subjectPredicate struct {
	subject, predicate string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{objects: make(map[subjectPredicate][]any)}
}

// Add appends the triples not already in the store. Source, timestamp and
// confidence do not take part in the comparison; the first copy wins.
func (s *Store) Add(triples ...message.Triple) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = make(map[subjectPredicate][]any)
	}
	for _, t := range triples {
		key := subjectPredicate{t.Subject, t.Predicate}
		if slices.ContainsFunc(s.objects[key], func(o any) bool { return reflect.DeepEqual(o, t.Object) }) {
			continue
		}
		s.objects[key] = append(s.objects[key], t.Object)
		s.triples = append(s.triples, t)
	}
}

// Match returns the triples matching the pattern. An empty subject or
// predicate and a nil object act as wildcards.
func (s *Store) Match(subject, predicate string, object any) []message.Triple {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []message.Triple
	for _, t := range s.triples {
		if subject != "" && t.Subject != subject {
			continue
		}
		if predicate != "" && t.Predicate != predicate {
			continue
		}
		if object != nil && !reflect.DeepEqual(t.Object, object) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Objects returns the objects of every (subject, predicate, *) triple.
func (s *Store) Objects(subject, predicate string) []any {
	matches := s.Match(subject, predicate, nil)
	out := make([]any, 0, len(matches))
	for _, t := range matches {
		out = append(out, t.Object)
	}
	return out
}

// Subjects returns the distinct subjects of (*, predicate, object) triples
// in first-seen order.
func (s *Store) Subjects(predicate string, object any) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range s.Match("", predicate, object) {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			out = append(out, t.Subject)
		}
	}
	return out
}

// HasSubject reports whether any triple has subject as its subject.
func (s *Store) HasSubject(subject string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.triples {
		if t.Subject == subject {
			return true
		}
	}
	return false
}

// Len returns the number of triples.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.triples)
}

// Triples returns a copy of every triple in insertion order.
func (s *Store) Triples() []message.Triple {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]message.Triple(nil), s.triples...)
}
