// Package report renders the record store: a fixed-width console table for
// review and a quoted CSV file for export. Both are read-only over the store.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/entrhq/ivdtrack/pkg/audit"
)

// Column widths and display cut-offs for the console table.
const (
	entityWidth   = 20
	contactWidth  = 15
	questionWidth = 30
	responseWidth = 30
	flaggedWidth  = 10

	entityDisplayMax  = 18
	contactDisplayMax = 13

	// Text longer than textDisplayMax is cut to textKeep runes plus the
	// ellipsis marker.
	textDisplayMax = 28
	textKeep       = 25
	ellipsis       = "..."
)

var tableRule = strings.Repeat("-", entityWidth+contactWidth+questionWidth+responseWidth+flaggedWidth)

// Render writes the console table for every interaction in s. It returns
// audit.ErrEmpty without writing anything when the store has no entities.
func Render(w io.Writer, s *audit.Store) error {
	if s.IsEmpty() {
		return audit.ErrEmpty
	}

	var b strings.Builder
	b.WriteString("\n")
	writeRow(&b, "ENTITY", "CONTACT", "QUESTION", "RESPONSE", "FLAGGED")
	b.WriteString(tableRule)
	b.WriteString("\n")

	for rec := range s.Records() {
		flag := "-"
		if rec.Interaction.Flagged() {
			flag = "YES"
		}
		writeRow(&b,
			cut(rec.Entity.Name(), entityDisplayMax),
			cut(rec.Contact.Name(), contactDisplayMax),
			abbreviate(rec.Interaction.Question()),
			abbreviate(rec.Interaction.Response()),
			flag,
		)
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func writeRow(b *strings.Builder, entity, contact, question, response, flagged string) {
	fmt.Fprintf(b, "%-*s%-*s%-*s%-*s%-*s\n",
		entityWidth, entity,
		contactWidth, contact,
		questionWidth, question,
		responseWidth, response,
		flaggedWidth, flagged,
	)
}

// cut returns at most n runes of s.
func cut(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func abbreviate(s string) string {
	r := []rune(s)
	if len(r) <= textDisplayMax {
		return s
	}
	return string(r[:textKeep]) + ellipsis
}
