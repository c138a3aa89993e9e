// Package cli provides the interactive menu shell for ivdtrack.
//
// The shell reads one answer per line, drives the record store, and prints
// the console table or writes the CSV export on request. Every failure is
// reported as a message and the session continues; only option 6, end of
// input, or a cancelled context ends it.
//
// Example usage:
//
//	store := audit.NewStore()
//	executor := cli.NewExecutor(store,
//	    cli.WithExportPath("TitleIVD_Audit_Log.csv"),
//	)
//	if err := executor.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/entrhq/ivdtrack/pkg/audit"
	"github.com/entrhq/ivdtrack/pkg/logging"
	"github.com/entrhq/ivdtrack/pkg/report"
)

const defaultBanner = "TITLE IV-D FRAUD TRACKER"

// Menu options.
const (
	optionAddEntity = iota + 1
	optionAddContact
	optionLogInteraction
	optionViewGrid
	optionExport
	optionExit
)

// Executor runs the interactive menu loop over a record store.
type Executor struct {
	store  *audit.Store
	reader *bufio.Reader
	writer io.Writer
	logger *logging.Logger

	exportPath string
	banner     string
	color      bool
	styles     styles

	// lines carries input from the reader goroutine started by Run
	lines chan lineResult
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithReader sets the input source (default is os.Stdin).
func WithReader(r io.Reader) ExecutorOption {
	return func(e *Executor) {
		e.reader = bufio.NewReader(r)
	}
}

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithLogger sets the logger used to record each command.
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithExportPath sets the file written by the export command.
func WithExportPath(path string) ExecutorOption {
	return func(e *Executor) {
		e.exportPath = path
	}
}

// WithBanner sets the title shown above the menu.
func WithBanner(banner string) ExecutorOption {
	return func(e *Executor) {
		e.banner = banner
	}
}

// WithColor enables or disables colored messages.
func WithColor(enabled bool) ExecutorOption {
	return func(e *Executor) {
		e.color = enabled
	}
}

// NewExecutor creates a shell over store.
func NewExecutor(store *audit.Store, opts ...ExecutorOption) *Executor {
	e := &Executor{
		store:      store,
		reader:     bufio.NewReader(os.Stdin),
		writer:     os.Stdout,
		logger:     logging.Nop(),
		exportPath: report.DefaultExportFile,
		banner:     defaultBanner,
		color:      true,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.styles = newStyles(e.writer, e.color)
	return e
}

// Run shows the menu and dispatches commands until the operator exits, the
// input is exhausted, or ctx is cancelled. Running out of input is a normal
// end of session and returns nil; cancellation returns ctx.Err(), even while
// a prompt is waiting for input.
func (e *Executor) Run(ctx context.Context) error {
	e.logger.Infof("Session started (export path %s)", e.exportPath)

	done := make(chan struct{})
	defer close(done)
	e.lines = make(chan lineResult)
	go e.readLines(done)

	for {
		if err := ctx.Err(); err != nil {
			return e.endOfInput(err)
		}

		e.printMenu()
		line, err := e.readLine(ctx, "Enter Option: ")
		if err != nil {
			return e.endOfInput(err)
		}

		option, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			option = 0
		}

		if option == optionExit {
			e.notify(">> Exiting application.")
			e.logger.Infof("Session ended by operator")
			return nil
		}

		if err := e.dispatch(ctx, option); err != nil {
			return e.endOfInput(err)
		}
	}
}

func (e *Executor) dispatch(ctx context.Context, option int) error {
	switch option {
	case optionAddEntity:
		return e.addEntity(ctx)
	case optionAddContact:
		return e.addContact(ctx)
	case optionLogInteraction:
		return e.logInteraction(ctx)
	case optionViewGrid:
		e.viewGrid()
	case optionExport:
		e.export()
	default:
		e.fail(">> Invalid option. Please try again.")
	}
	return nil
}

func (e *Executor) endOfInput(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		fmt.Fprintln(e.writer)
		e.logger.Infof("Input closed, ending session")
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(e.writer)
		e.logger.Infof("Session cancelled")
		return err
	}
	e.logger.Errorf("Failed to read input: %v", err)
	return fmt.Errorf("failed to read input: %w", err)
}

func (e *Executor) printMenu() {
	fmt.Fprintln(e.writer)
	fmt.Fprintln(e.writer, e.styles.paint(e.styles.banner, "--- "+e.banner+" ---"))
	fmt.Fprintln(e.writer, "1. Add Entity/Business")
	fmt.Fprintln(e.writer, "2. Add Contact")
	fmt.Fprintln(e.writer, "3. Log Interaction (Q&A)")
	fmt.Fprintln(e.writer, "4. View Data Grid")
	fmt.Fprintln(e.writer, "5. Export Data to CSV")
	fmt.Fprintln(e.writer, "6. Exit")
}

func (e *Executor) addEntity(ctx context.Context) error {
	fmt.Fprintln(e.writer)
	name, err := e.readLine(ctx, "Enter Entity/Business Name: ")
	if err != nil {
		return err
	}
	fundingType, err := e.readLine(ctx, "Enter Funding Type (ex: Federal Grant, State Contractor, etc): ")
	if err != nil {
		return err
	}

	e.store.AddEntity(name, fundingType)
	e.logger.Infof("Added entity %q (%s), %d total", name, fundingType, e.store.Len())
	e.notify(">> Entity successfully added.")
	return nil
}

func (e *Executor) addContact(ctx context.Context) error {
	if e.store.IsEmpty() {
		e.fail(">> No entities found. Please add an entity first.")
		return nil
	}

	entity, err := e.selectEntity(ctx, "Select Entity:")
	if err != nil {
		return err
	}
	if entity == nil {
		return nil
	}

	name, err := e.readLine(ctx, "Enter Contact Name: ")
	if err != nil {
		return err
	}
	title, err := e.readLine(ctx, "Enter Job Title: ")
	if err != nil {
		return err
	}

	entity.AddContact(name, title)
	e.logger.Infof("Added contact %q (%s) to %q", name, title, entity.Name())
	e.notify(">> Contact successfully added.")
	return nil
}

func (e *Executor) logInteraction(ctx context.Context) error {
	if e.store.IsEmpty() {
		e.fail(">> No entities found in database.")
		return nil
	}

	entity, err := e.selectEntity(ctx, "--- SELECT ENTITY ---")
	if err != nil {
		return err
	}
	if entity == nil {
		return nil
	}

	name, err := e.readLine(ctx, "Enter Contact Name: ")
	if err != nil {
		return err
	}

	contact, err := entity.FindContact(name)
	if err != nil {
		e.logger.Warnf("Lookup in %q failed: %v", entity.Name(), err)
		e.fail(">> Contact not found. Please verify spelling.")
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(e.writer, "\n--- NEW INQUIRY FOR: %s ---\n", contact.Name())

		question, err := e.readLine(ctx, "Enter Question Asked: ")
		if err != nil {
			return err
		}
		response, err := e.readLine(ctx, "Enter Response/Data Received: ")
		if err != nil {
			return err
		}
		flag, err := e.readYesNo(ctx, "Flag for review/discrepancy? (y/n): ")
		if err != nil {
			return err
		}
		flagged := flag == 'y'

		contact.AddInteraction(question, response, flagged)
		e.logger.Infof("Logged interaction for %q at %q (flagged=%t)", contact.Name(), entity.Name(), flagged)
		e.notify(">> Interaction logged.")

		again, err := e.readYesNo(ctx, ">> Ask another question to this contact? (y/n): ")
		if err != nil {
			return err
		}
		if again == 'n' {
			return nil
		}
	}
}

// selectEntity lists the entities and reads an ordinal. It returns a nil
// entity after reporting an invalid selection.
func (e *Executor) selectEntity(ctx context.Context, heading string) (*audit.Entity, error) {
	fmt.Fprintf(e.writer, "\n%s\n", heading)
	for i, name := range e.store.Entities() {
		fmt.Fprintf(e.writer, "%d. %s\n", i, name)
	}

	line, err := e.readLine(ctx, "Enter Choice: ")
	if err != nil {
		return nil, err
	}

	ordinal, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		ordinal = 0
	}

	entity, err := e.store.SelectEntity(ordinal)
	if err != nil {
		e.logger.Warnf("Invalid entity selection %q: %v", line, err)
		e.fail(">> Invalid selection.")
		return nil, nil
	}
	return entity, nil
}

func (e *Executor) viewGrid() {
	err := report.Render(e.writer, e.store)
	switch {
	case errors.Is(err, audit.ErrEmpty):
		e.fail(">> Database is empty.")
	case err != nil:
		e.logger.Errorf("Render failed: %v", err)
		e.fail(">> Could not display data: " + err.Error())
	default:
		e.logger.Debugf("Rendered %d records", e.store.Stats().Interactions)
	}
}

func (e *Executor) export() {
	err := report.ExportFile(e.exportPath, e.store)
	switch {
	case errors.Is(err, audit.ErrEmpty):
		e.fail(">> Database is empty.")
	case err != nil:
		e.logger.Errorf("Export to %s failed: %v", e.exportPath, err)
		e.fail(">> Export failed: " + err.Error())
	default:
		st := e.store.Stats()
		e.logger.Infof("Exported %d interactions (%d flagged) to %s", st.Interactions, st.Flagged, e.exportPath)
		fmt.Fprintln(e.writer)
		e.notify(fmt.Sprintf(">> Data successfully exported to %s.", e.exportPath))
	}
}

// lineResult is one line read from the input, without its line ending.
type lineResult struct {
	line string
	err  error
}

// readLines feeds e.lines until the input fails or done is closed. A read
// blocked on a terminal stays blocked after Run returns; the process is
// exiting by then.
func (e *Executor) readLines(done <-chan struct{}) {
	for {
		line, err := e.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			// A final line without a newline is still a line.
			err = nil
		}

		select {
		case e.lines <- lineResult{line: strings.TrimRight(line, "\r\n"), err: err}:
		case <-done:
			return
		}

		if err != nil {
			return
		}
	}
}

// readLine prompts and waits for the next line of input or for ctx to be
// cancelled. io.EOF is only reported once nothing is left.
func (e *Executor) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(e.writer, e.styles.paint(e.styles.muted, prompt))

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-e.lines:
		// Input that arrives with the cancellation is dropped.
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return res.line, res.err
	}
}

// readYesNo returns the lower-cased first non-blank character of the answer,
// or 0 for a blank answer.
func (e *Executor) readYesNo(ctx context.Context, prompt string) (rune, error) {
	line, err := e.readLine(ctx, prompt)
	if err != nil {
		return 0, err
	}
	for _, r := range strings.TrimSpace(line) {
		if r == 'Y' || r == 'N' {
			r += 'a' - 'A'
		}
		return r, nil
	}
	return 0, nil
}

func (e *Executor) notify(msg string) {
	fmt.Fprintln(e.writer, e.styles.paint(e.styles.success, msg))
}

func (e *Executor) fail(msg string) {
	fmt.Fprintln(e.writer, e.styles.paint(e.styles.failure, msg))
}
