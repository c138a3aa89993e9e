package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/entrhq/ivdtrack/pkg/logging"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration file",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the settings in effect",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, err := setup(opts, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer rt.logger.Close()

				return showConfig(cmd.OutOrStdout(), rt)
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write a config file with the default settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, err := setup(opts, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer rt.logger.Close()

				path := rt.cfg.Path()
				if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("config file %s already exists; use \"ivdtrack config reset\" to overwrite it", path)
				}

				if err := rt.cfg.Manager.SaveAll(); err != nil {
					return err
				}
				rt.logger.Infof("Wrote default configuration to %s", path)
				fmt.Fprintf(cmd.OutOrStdout(), ">> Wrote default configuration to %s.\n", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Overwrite the config file with the default settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, err := setup(opts, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer rt.logger.Close()

				rt.cfg.Manager.ResetAll()
				if err := rt.cfg.Manager.SaveAll(); err != nil {
					return err
				}
				rt.logger.Infof("Reset configuration in %s", rt.cfg.Path())
				fmt.Fprintf(cmd.OutOrStdout(), ">> Reset configuration in %s.\n", rt.cfg.Path())
				return nil
			},
		},
	)

	return cmd
}

func showConfig(w io.Writer, rt *runtime) error {
	logDir, err := logging.GetLogDirectory()
	if err != nil {
		logDir = "unavailable (" + err.Error() + ")"
	}

	fmt.Fprintf(w, "Config file:   %s\n", rt.cfg.Path())
	fmt.Fprintf(w, "Log directory: %s\n", logDir)
	fmt.Fprintf(w, "Export path:   %s\n", rt.exportPath)

	for _, section := range rt.cfg.Manager.GetSections() {
		fmt.Fprintf(w, "\n[%s] %s\n", section.ID(), section.Title())
		fmt.Fprintf(w, "  %s\n", section.Description())

		data := section.Data()
		for _, key := range slices.Sorted(maps.Keys(data)) {
			fmt.Fprintf(w, "  %s = %v\n", key, data[key])
		}
	}
	return nil
}
