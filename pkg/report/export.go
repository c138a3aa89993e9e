package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/entrhq/ivdtrack/pkg/audit"
)

const (
	// DefaultExportFile is the export file name used when none is configured.
	DefaultExportFile = "TitleIVD_Audit_Log.csv"

	// TimestampLayout is the layout of the Timestamp column.
	TimestampLayout = "2006-01-02 15:04:05"
)

// ExportHeader is the fixed first line of every export.
var ExportHeader = []string{
	"Timestamp",
	"Entity Name",
	"Funding Type",
	"Contact Name",
	"Job Title",
	"Question",
	"Response",
	"Flagged",
}

// Export writes the header and one row per interaction to w. Text fields are
// always quoted and the flag is the bare token YES or NO. It returns
// audit.ErrEmpty without writing anything when the store has no entities.
func Export(w io.Writer, s *audit.Store) error {
	if s.IsEmpty() {
		return audit.ErrEmpty
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(ExportHeader, ","))
	bw.WriteString("\n")

	for rec := range s.Records() {
		in := rec.Interaction
		fields := []string{
			in.CapturedAt().Local().Format(TimestampLayout),
			rec.Entity.Name(),
			rec.Entity.FundingType(),
			rec.Contact.Name(),
			rec.Contact.Title(),
			in.Question(),
			in.Response(),
		}
		for _, f := range fields {
			bw.WriteString(quote(f))
			bw.WriteString(",")
		}
		if in.Flagged() {
			bw.WriteString("YES")
		} else {
			bw.WriteString("NO")
		}
		bw.WriteString("\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportFile writes the export to path. The content goes to a temporary file
// in the same directory first and is renamed into place, so a failed export
// never leaves a partial file at path.
func ExportFile(path string, s *audit.Store) error {
	if s.IsEmpty() {
		return audit.ErrEmpty
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create export file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := Export(tmp, s); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close export file: %w", err)
	}

	// CreateTemp uses 0600; exports are meant to be shared.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set export file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move export into place: %w", err)
	}

	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
