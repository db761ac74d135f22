package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errNotSignedIn = errors.New("not signed in")

func newLoginCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login <name>",
		Short: "Sign in with a username",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()
			if err := a.Session.SignIn(strings.Join(args, " ")); err != nil {
				return err
			}
			user, _ := a.Session.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user)
			return nil
		},
	}
}

func newLogoutCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()
			if err := a.Session.SignOut(); err != nil {
				return fmt.Errorf("sign out: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()
			user, ok := a.Session.Current()
			if !ok {
				return errNotSignedIn
			}
			fmt.Fprintln(cmd.OutOrStdout(), user)
			return nil
		},
	}
}
