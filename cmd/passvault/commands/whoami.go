package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Check credentials and print the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(func(sess *domain.Session) error {
				user, ok := c.app.Vault.ActiveUser(sess)
				if !ok {
					return domain.ErrNoActiveSession
				}
				fmt.Fprintln(c.out, user)
				return nil
			})
		},
	}
}
