package content

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID       = errors.New("id must be positive")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownIcon     = errors.New("unknown result icon")
	ErrMissingField    = errors.New("required field empty")
)

// requiredField pairs a field name with its value; validation reports the first blank one.
type requiredField struct {
	name  string
	value string
}

// Record is a content entry addressable by id and filterable by category.
type Record[T any] interface {
	RecordID() int
	RecordCategory() string
	clone() T
}

// Adjacent holds the records whose ids are exactly one below and one above a given id.
type Adjacent[T any] struct {
	Previous *T `json:"previous"`
	Next     *T `json:"next"`
}

// Store is a read-only table of records kept in declaration order.
// It is built once and never mutated, so concurrent reads need no locking.
// Every read hands out copies.
type Store[T Record[T]] struct {
	records []T
	index   map[int]int // id -> position in records
}

func NewStore[T Record[T]](records []T) (*Store[T], error) {
	s := &Store[T]{
		records: make([]T, 0, len(records)),
		index:   make(map[int]int, len(records)),
	}

	for _, r := range records {
		id := r.RecordID()
		if id <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
		}
		if _, found := s.index[id]; found {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, id)
		}
		s.index[id] = len(s.records)
		s.records = append(s.records, r.clone())
	}

	return s, nil
}

// ListByCategory returns the records tagged with category, in declaration order.
// "all" or "" returns everything. The match is exact and case-sensitive;
// an unknown category yields an empty, non-nil slice.
func (s *Store[T]) ListByCategory(category string) []T {
	out := make([]T, 0, len(s.records))
	for _, r := range s.records {
		if isAll(category) || r.RecordCategory() == category {
			out = append(out, r.clone())
		}
	}
	return out
}

// GetByID returns the record with exactly this id. Absence is reported by the bool.
func (s *Store[T]) GetByID(id int) (T, bool) {
	i, found := s.index[id]
	if !found {
		var zero T
		return zero, false
	}
	return s.records[i].clone(), true
}

// GetAdjacent looks up ids id-1 and id+1. Gaps are not skipped: a missing
// neighbour id means no neighbour on that side.
func (s *Store[T]) GetAdjacent(id int) Adjacent[T] {
	var adjacent Adjacent[T]
	if prev, found := s.GetByID(id - 1); found {
		adjacent.Previous = &prev
	}
	if next, found := s.GetByID(id + 1); found {
		adjacent.Next = &next
	}
	return adjacent
}

func (s *Store[T]) Len() int {
	return len(s.records)
}

// Categories returns the distinct categories in order of first appearance.
func (s *Store[T]) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, r := range s.records {
		c := r.RecordCategory()
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	return categories
}
