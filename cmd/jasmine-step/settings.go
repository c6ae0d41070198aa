package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kbukum/jasmine-step/settings"
	"github.com/kbukum/jasmine-step/validation"
)

func newSettingsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the shared jasmine-node settings",
	}
	cmd.AddCommand(newSettingsShowCmd(o), newSettingsSetCmd(o))
	return cmd
}

func newSettingsShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			store := settings.NewStore(o.fs, cfg.Settings.File)
			if err := store.Load(); err != nil {
				return err
			}
			s := store.Get()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Setting", "Value"})
			t.AppendRows([]table.Row{
				{"applicationExecPath", s.ExecutablePath},
				{"executable", s.Executable()},
				{"file", store.File()},
			})
			t.Render()
			return nil
		},
	}
}

func newSettingsSetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <applicationExecPath>",
		Short: "Store the jasmine-node executable path",
		Long: `Store the jasmine-node executable path used by every jasmine-node step.
An empty value ("") restores the PATH lookup of jasmine-node. A path that
does not exist is stored anyway and reported as a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			store := settings.NewStore(o.fs, cfg.Settings.File)
			if err := store.Load(); err != nil {
				return err
			}
			result, err := store.Set(args[0])
			if err != nil {
				return err
			}
			printResult(cmd, result)
			fmt.Fprintf(cmd.OutOrStdout(), "applicationExecPath=%s saved to %s\n", args[0], store.File())
			return nil
		},
	}
}

func newCheckExecCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-exec <path>",
		Short: "Check a candidate jasmine-node executable path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := settings.CheckExecPath(o.fs, args[0])
			fmt.Fprintln(cmd.OutOrStdout(), result.String())
			return result.Err("applicationExecPath")
		},
	}
}

func printResult(cmd *cobra.Command, r validation.Result) {
	if !r.IsOK() {
		fmt.Fprintln(cmd.ErrOrStderr(), r.String())
	}
}
