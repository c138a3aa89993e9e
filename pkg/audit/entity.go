package audit

import (
	"fmt"
	"slices"
	"time"
)

// Entity is a tracked business or agency together with its contacts.
type Entity struct {
	name        string
	fundingType string
	contacts    []*Contact
	now         func() time.Time
}

// Name returns the entity name.
func (e *Entity) Name() string {
	return e.name
}

// FundingType returns the funding type, e.g. "Federal Grant".
func (e *Entity) FundingType() string {
	return e.fundingType
}

// Contacts returns the contacts in insertion order. The slice is a copy;
// appending to it does not affect the entity.
func (e *Entity) Contacts() []*Contact {
	return slices.Clone(e.contacts)
}

// AddContact appends a new contact and returns it. Duplicate names are allowed.
func (e *Entity) AddContact(name, title string) *Contact {
	c := &Contact{
		name:  name,
		title: title,
		now:   e.now,
	}
	e.contacts = append(e.contacts, c)
	return c
}

// FindContact returns the first contact whose name equals name exactly
// (case-sensitive). It returns ErrContactNotFound when nothing matches.
func (e *Entity) FindContact(name string) (*Contact, error) {
	for _, c := range e.contacts {
		if c.name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrContactNotFound, name)
}
