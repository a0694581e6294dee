package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <service>",
		Short: "Remove a service credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(func(sess *domain.Session) error {
				service := domain.ServiceName(args[0])
				if err := c.app.Vault.RemoveEntry(sess, service); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Removed %s\n", service)
				return nil
			})
		},
	}
}
