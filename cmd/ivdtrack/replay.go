package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/entrhq/ivdtrack/pkg/audit"
	"github.com/entrhq/ivdtrack/pkg/executor/headless"
)

func newReplayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a recorded session from a YAML script and export it",
		Long: `Loads entities, contacts and interactions from a YAML script, applies them
in order, and writes the CSV export without prompting.

Example script:

  export:
    path: q3.csv
    render: true
  entities:
    - name: Acme Corp
      funding_type: Federal Grant
      contacts:
        - name: Jane Doe
          title: Auditor
  log:
    - entity: 1
      contact: Jane Doe
      question: Are funds allocated?
      response: Yes, per Q3 report
      flagged: true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.logger.Close()

			script, err := headless.LoadScript(args[0])
			if err != nil {
				return err
			}

			executor := headless.NewExecutor(script, audit.NewStore(),
				headless.WithLogger(rt.logger),
				headless.WithWriter(cmd.OutOrStdout()),
				headless.WithExportPath(rt.exportPath),
			)

			summary, err := executor.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				">> Replayed %d entities, %d contacts, %d interactions (%d flagged).\n",
				summary.Stats.Entities, summary.Stats.Contacts, summary.Stats.Interactions, summary.Stats.Flagged)
			fmt.Fprintf(cmd.OutOrStdout(), ">> Data successfully exported to %s.\n", summary.ExportPath)
			fmt.Fprintf(cmd.OutOrStdout(), ">> Run %s finished in %s.\n", summary.RunID, summary.Duration.Round(time.Millisecond))
			return nil
		},
	}
}
