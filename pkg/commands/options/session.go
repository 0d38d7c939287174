package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/snake"
)

// CredentialOptions are prompted for when left off the command line.
type CredentialOptions struct {
	Email    string
	Password string
	Name     string
}

func AddCredentialArgs(cmd *cobra.Command, o *CredentialOptions) {
	cmd.Flags().StringVar(&o.Email, "email", "", "Account email.")
	cmd.Flags().StringVar(&o.Password, "password", "", "Account password.")
	snake.MarkSecret(cmd, "password")
}

func AddNameArg(cmd *cobra.Command, o *CredentialOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "", "Display name.")
}
