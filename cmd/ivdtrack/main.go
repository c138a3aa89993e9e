// Package main provides the ivdtrack command: an interactive tracker for
// Title IV-D compliance audits. Operators record entities, their contacts and
// the questions put to each contact, review them in a console table, and
// export the session to CSV.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/entrhq/ivdtrack/pkg/audit"
	"github.com/entrhq/ivdtrack/pkg/config"
	"github.com/entrhq/ivdtrack/pkg/executor/cli"
	"github.com/entrhq/ivdtrack/pkg/logging"
)

const version = "2.1.0"

// options holds the global flags.
type options struct {
	configPath string
	exportFile string
	noColor    bool
	verbose    bool
}

// runtime is everything a command needs after flags, env and config are merged.
type runtime struct {
	cfg        *config.Config
	env        config.Env
	exportPath string
	logger     *logging.Logger
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first signal ends the session; a second one exits immediately.
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n\nShutting down...")
		cancel()
		<-sigChan
		os.Exit(130)
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ivdtrack",
		Short: "Title IV-D compliance and audit tracker",
		Long: `ivdtrack records the entities under audit, the contacts at each entity,
and every question asked with the response received.

Run without arguments to start the interactive menu. Use "replay" to load a
recorded session from a YAML script and export it without prompting.

Environment Variables:
  IVDTRACK_CONFIG        Path to the config file (default ~/.ivdtrack/config.json)
  IVDTRACK_EXPORT_FILE   Export file name or absolute path
  IVDTRACK_EXPORT_DIR    Directory for the export file
  NO_COLOR               Disable colored messages

Use "config" to inspect the settings in effect or write a config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.logger.Close()

			return runInteractive(cmd.Context(), rt, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to the config file (or set IVDTRACK_CONFIG)")
	flags.StringVar(&opts.exportFile, "export-file", "", "Export file path (overrides env and config)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored messages")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print the log file location and echo log entries to stderr")

	root.AddCommand(newReplayCmd(opts), newConfigCmd(opts), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ivdtrack v%s\n", version)
		},
	}
}

// setup merges env, config file and flags and opens the session logger.
func setup(opts *options, stderr io.Writer) (*runtime, error) {
	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = env.ConfigPath
	}

	logger := newLogger("ivdtrack", opts.verbose, stderr)

	cfg, err := config.Load(configPath)
	if cfg == nil {
		logger.Close()
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err != nil {
		// Unreadable files and invalid sections fall back to defaults.
		logger.Warnf("Configuration problem, using defaults where needed: %v", err)
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
	}

	rt := &runtime{
		cfg:        cfg,
		env:        env,
		exportPath: config.ResolveExportPath(opts.exportFile, env, cfg.Export),
		logger:     logger,
	}
	logger.Infof("ivdtrack v%s, export path %s", version, rt.exportPath)
	return rt, nil
}

func newLogger(component string, verbose bool, stderr io.Writer) *logging.Logger {
	// On failure NewLogger hands back a stderr logger that has already
	// printed the reason.
	logger, err := logging.NewLogger(component)
	if err != nil || !verbose {
		return logger
	}

	fmt.Fprintf(stderr, "Session %s, logging to %s\n", logger.SessionID(), logger.LogPath())
	return logger.Tee(stderr)
}

func runInteractive(ctx context.Context, rt *runtime, opts *options, in io.Reader, out io.Writer) error {
	store := audit.NewStore()

	executor := cli.NewExecutor(store,
		cli.WithReader(in),
		cli.WithWriter(out),
		cli.WithLogger(rt.logger),
		cli.WithExportPath(rt.exportPath),
		cli.WithBanner(rt.cfg.Display.Banner),
		cli.WithColor(rt.cfg.UseColor(rt.env, opts.noColor)),
	)

	err := executor.Run(ctx)
	if errors.Is(err, context.Canceled) {
		rt.logger.Infof("Session interrupted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("session error: %w", err)
	}
	return nil
}
