// Package audit holds the session record set: entities, the contacts
// associated with them, and the question/response interactions logged per
// contact. Everything lives in memory for one session and is kept in
// insertion order.
package audit

import "time"

// Interaction is one logged question/response pair. It is immutable once
// created; the capture time is stamped at creation.
type Interaction struct {
	capturedAt time.Time
	question   string
	response   string
	flagged    bool
}

func newInteraction(at time.Time, question, response string, flagged bool) Interaction {
	return Interaction{
		capturedAt: at,
		question:   question,
		response:   response,
		flagged:    flagged,
	}
}

// CapturedAt returns the wall-clock time the interaction was logged.
func (i Interaction) CapturedAt() time.Time {
	return i.capturedAt
}

// Question returns the question that was asked.
func (i Interaction) Question() string {
	return i.question
}

// Response returns the response or data received.
func (i Interaction) Response() string {
	return i.response
}

// Flagged reports whether the interaction was flagged for review.
func (i Interaction) Flagged() bool {
	return i.flagged
}
