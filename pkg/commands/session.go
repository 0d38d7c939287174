package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/remote"
	"tableflip.dev/daybook/pkg/snake"
)

func addSession(topLevel *cobra.Command) {
	addLogin(topLevel)
	addRegister(topLevel)
	addLogout(topLevel)
	addSync(topLevel)
	addWhoami(topLevel)
}

func addLogin(topLevel *cobra.Command) {
	co := &options.CredentialOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and replace local days with the server's.",
		Example: `
daybook login
daybook login --email me@example.com
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return snake.PromptFlags(cmd, "email", "password")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				u, err := j.Login(cmd.Context(), co.Email, co.Password)
				if err != nil {
					return err
				}
				return signedIn(cmd, j, u)
			})
		},
	}

	options.AddCredentialArgs(cmd, co)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addRegister(topLevel *cobra.Command) {
	co := &options.CredentialOptions{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in.",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return snake.PromptFlags(cmd, "email", "password", "name")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				u, err := j.Register(cmd.Context(), co.Email, co.Password, co.Name)
				if err != nil {
					return err
				}
				return signedIn(cmd, j, u)
			})
		},
	}

	options.AddCredentialArgs(cmd, co)
	options.AddNameArg(cmd, co)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func signedIn(cmd *cobra.Command, j *journal, u remote.User) error {
	if output.JSON {
		return output.Print(cmd.OutOrStdout(), u)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s, %d day(s) on this device\n", u.Email, len(j.State().Entries))
	return nil
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the session. Local days are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				if err := j.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"pull"},
		Short:   "Replace local days with the server's.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				n, err := j.Pull(cmd.Context())
				if err != nil {
					return err
				}
				if output.JSON {
					return output.Print(cmd.OutOrStdout(), map[string]int{"pulled": n})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d day(s)\n", n)
				return nil
			})
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				u, err := j.Me(cmd.Context())
				if err != nil {
					return err
				}
				if output.JSON {
					return output.Print(cmd.OutOrStdout(), u)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.Name, u.Email)
				return nil
			})
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
