package audit

import (
	"slices"
	"time"
)

// Contact is an individual associated with an entity. It owns the ordered
// list of interactions logged against it.
type Contact struct {
	name         string
	title        string
	interactions []Interaction
	now          func() time.Time
}

// Name returns the contact's name.
func (c *Contact) Name() string {
	return c.name
}

// Title returns the contact's job title.
func (c *Contact) Title() string {
	return c.title
}

// Interactions returns a copy of the logged interactions in the order they
// were added.
func (c *Contact) Interactions() []Interaction {
	return slices.Clone(c.interactions)
}

// AddInteraction stamps the current time and appends a new interaction.
func (c *Contact) AddInteraction(question, response string, flagged bool) Interaction {
	in := newInteraction(c.now(), question, response, flagged)
	c.interactions = append(c.interactions, in)
	return in
}
