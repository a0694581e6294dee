package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

func (c *cli) addCmd() *cobra.Command {
	var login, secret string
	cmd := &cobra.Command{
		Use:   "add <service>",
		Short: "Store or replace a service credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(func(sess *domain.Session) error {
				if secret == "" {
					var err error
					if secret, err = c.readSecret("Service password: "); err != nil {
						return err
					}
				}
				service := domain.ServiceName(args[0])
				if err := c.app.Vault.AddEntry(sess, service, login, secret); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Stored %s\n", service)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&login, "login", "", "username at the service")
	cmd.Flags().StringVar(&secret, "secret", "", "password at the service (prompted when omitted)")
	return cmd
}
