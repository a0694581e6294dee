package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

// unregister asks for the account's own password before deleting it.
func (c *cli) unregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unregister <username>",
		Short: "Delete an account and its vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.opts.username = args[0]
			return c.withSession(func(sess *domain.Session) error {
				if err := c.app.Registry.Delete(sess.Username); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Deleted %s\n", sess.Username)
				return nil
			})
		},
	}
}
