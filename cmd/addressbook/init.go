// Init command for the addressbook CLI.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize addressbook configuration and storage",
		Long:  "Create the configuration and data directories, write config.yaml with the effective settings, and create the contact store if it does not exist.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Record the resolved settings so later runs find the same store.
			path := filepath.Join(a.configDir, configFileExt)
			cfg := defaultConfigFile()
			cfg.Backend = a.cfg.Backend
			cfg.DataDir = a.cfg.DataDir
			cfg.BirthdayWindow = a.cfg.BirthdayWindow
			cfg.LogLevel = a.logLevel
			if err := rewriteConfig(path, cfg); err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}

			book, err := a.loadBook()
			if err != nil {
				return err
			}
			if err := a.saveBook(book); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Address book initialized (%s backend, data in %s)\n", a.cfg.Backend, a.cfg.DataDir)
			return nil
		},
	}
}
