package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

func (c *cli) setEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-email <username> <email>",
		Short: "Change an account's email address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.opts.username = args[0]
			return c.withSession(func(sess *domain.Session) error {
				if err := c.app.Registry.UpdateEmail(sess.Username, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Email for %s set to %s\n", sess.Username, args[1])
				return nil
			})
		},
	}
}
