package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

func (c *cli) registerCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and its empty vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := c.opts.password
			if password == "" {
				var err error
				if password, err = c.newSecret("New password: "); err != nil {
					return err
				}
			}
			if err := c.app.Registry.Register(domain.Username(args[0]), email, password); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Registered %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address for the account")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
