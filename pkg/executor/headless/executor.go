package headless

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/entrhq/ivdtrack/pkg/audit"
	"github.com/entrhq/ivdtrack/pkg/logging"
	"github.com/entrhq/ivdtrack/pkg/report"
)

// Executor applies a Script to a record store.
type Executor struct {
	script *Script
	store  *audit.Store
	logger *logging.Logger
	writer io.Writer

	// exportPath is used when the script does not name one
	exportPath string
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the logger for the run.
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithWriter sets where the console table goes when the script asks for it
// (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithExportPath sets the export path used when the script has none.
func WithExportPath(path string) ExecutorOption {
	return func(e *Executor) {
		e.exportPath = path
	}
}

// NewExecutor creates an executor for script over store.
func NewExecutor(script *Script, store *audit.Store, opts ...ExecutorOption) *Executor {
	e := &Executor{
		script:     script,
		store:      store,
		logger:     logging.Nop(),
		writer:     os.Stdout,
		exportPath: report.DefaultExportFile,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Summary describes a completed replay.
type Summary struct {
	RunID      string
	Stats      audit.Stats
	ExportPath string
	Duration   time.Duration
}

// Run applies the script, optionally renders the table, and writes the
// export. The export path in the script takes precedence over the one given
// to NewExecutor.
func (e *Executor) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := e.logger.With("run", runID)

	log.Infof("Replaying %d entities and %d log entries", len(e.script.Entities), len(e.script.Log))

	if err := e.applyEntities(ctx); err != nil {
		log.Errorf("Replay failed: %v", err)
		return nil, err
	}

	if err := e.applyLog(ctx); err != nil {
		log.Errorf("Replay failed: %v", err)
		return nil, err
	}

	if e.script.Export.Render {
		if err := report.Render(e.writer, e.store); err != nil {
			return nil, fmt.Errorf("failed to render table: %w", err)
		}
	}

	path := e.exportPath
	if e.script.Export.Path != "" {
		path = e.script.Export.Path
	}

	if err := report.ExportFile(path, e.store); err != nil {
		log.Errorf("Export to %s failed: %v", path, err)
		return nil, fmt.Errorf("failed to export: %w", err)
	}

	summary := &Summary{
		RunID:      runID,
		Stats:      e.store.Stats(),
		ExportPath: path,
		Duration:   time.Since(start),
	}
	log.Infof("Exported %d interactions (%d flagged) to %s", summary.Stats.Interactions, summary.Stats.Flagged, path)

	return summary, nil
}

func (e *Executor) applyEntities(ctx context.Context) error {
	for _, ec := range e.script.Entities {
		if err := ctx.Err(); err != nil {
			return err
		}

		entity := e.store.AddEntity(ec.Name, ec.FundingType)
		for _, cc := range ec.Contacts {
			entity.AddContact(cc.Name, cc.Title)
		}
		e.logger.Debugf("Added entity %q with %d contacts", ec.Name, len(ec.Contacts))
	}
	return nil
}

func (e *Executor) applyLog(ctx context.Context) error {
	for i, entry := range e.script.Log {
		if err := ctx.Err(); err != nil {
			return err
		}

		entity, err := e.store.SelectEntity(entry.Entity)
		if err != nil {
			return fmt.Errorf("log entry %d: %w", i+1, err)
		}

		contact, err := entity.FindContact(entry.Contact)
		if err != nil {
			return fmt.Errorf("log entry %d: entity %q: %w", i+1, entity.Name(), err)
		}

		contact.AddInteraction(entry.Question, entry.Response, entry.Flagged)
	}
	return nil
}
