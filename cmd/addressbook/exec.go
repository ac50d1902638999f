// Exec command for the addressbook CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/addressbook/internal/router"
)

func newExecCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run a single session command and save",
		Long: `Run one session command, such as "add alice 0501234567", against the
stored contacts, print its reply, and save.`,
		Example: `  addressbook exec add alice 0501234567
  addressbook exec birthdays`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.loadBook()
			if err != nil {
				return err
			}
			r := router.New(book, a.store,
				router.WithBirthdayWindow(a.cfg.BirthdayWindow),
				router.WithLogger(a.logger),
			)

			reply, err := r.Dispatch(strings.Join(args, " "))
			if err != nil {
				return sysError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			if r.Done() {
				return nil
			}
			return a.saveBook(book)
		},
	}
	// Everything after the session command name belongs to it.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
