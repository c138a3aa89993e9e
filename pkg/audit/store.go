package audit

import (
	"fmt"
	"iter"
	"time"
)

// Store is the root of the record set for one session. It is not safe for
// concurrent use; a session drives it from a single goroutine.
type Store struct {
	entities []*Entity
	now      func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the clock used to stamp new interactions.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty record store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddEntity appends a new entity and returns it. No duplicate check is made.
func (s *Store) AddEntity(name, fundingType string) *Entity {
	e := &Entity{
		name:        name,
		fundingType: fundingType,
		now:         s.now,
	}
	s.entities = append(s.entities, e)
	return e
}

// Len returns the number of entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// IsEmpty reports whether no entity has been added yet.
func (s *Store) IsEmpty() bool {
	return len(s.entities) == 0
}

// Entities yields (ordinal, name) pairs in insertion order with 1-based
// ordinals, suitable for a numbered selection menu. The sequence can be
// ranged over any number of times.
func (s *Store) Entities() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, e := range s.entities {
			if !yield(i+1, e.name) {
				return
			}
		}
	}
}

// SelectEntity returns the entity at the given 1-based ordinal.
func (s *Store) SelectEntity(ordinal int) (*Entity, error) {
	if ordinal < 1 || ordinal > len(s.entities) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrOutOfRange, ordinal, len(s.entities))
	}
	return s.entities[ordinal-1], nil
}

// Record is one interaction together with the contact and entity that own it.
type Record struct {
	Entity      *Entity
	Contact     *Contact
	Interaction Interaction
}

// Records yields every interaction in store order: entities, then their
// contacts, then each contact's interactions.
func (s *Store) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, e := range s.entities {
			for _, c := range e.contacts {
				for _, in := range c.interactions {
					if !yield(Record{Entity: e, Contact: c, Interaction: in}) {
						return
					}
				}
			}
		}
	}
}

// Stats counts the records held by the store.
type Stats struct {
	Entities     int
	Contacts     int
	Interactions int
	Flagged      int
}

// Stats returns counts across the whole store.
func (s *Store) Stats() Stats {
	st := Stats{Entities: len(s.entities)}
	for _, e := range s.entities {
		st.Contacts += len(e.contacts)
		for _, c := range e.contacts {
			st.Interactions += len(c.interactions)
			for _, in := range c.interactions {
				if in.flagged {
					st.Flagged++
				}
			}
		}
	}
	return st
}
