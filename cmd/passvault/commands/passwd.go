package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

// passwd authenticates with the current password, which is also the old
// password the registry checks again.
func (c *cli) passwdCmd() *cobra.Command {
	var newPassword string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oldPassword, err := c.accountPassword("Current password: ")
			if err != nil {
				return err
			}
			c.opts.password = oldPassword

			return c.withSession(func(sess *domain.Session) error {
				if newPassword == "" {
					if newPassword, err = c.newSecret("New password: "); err != nil {
						return err
					}
				}
				if err := c.app.Registry.ChangePassword(sess, oldPassword, newPassword); err != nil {
					return err
				}
				fmt.Fprintln(c.out, "Password changed")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&newPassword, "new-password", "", "new password (prompted when omitted)")
	return cmd
}
