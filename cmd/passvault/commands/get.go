package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

func (c *cli) getCmd() *cobra.Command {
	var copyPassword bool
	cmd := &cobra.Command{
		Use:   "get <service>",
		Short: "Show a service credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(func(sess *domain.Session) error {
				rec, err := c.app.Vault.GetEntry(sess, domain.ServiceName(args[0]))
				if err != nil {
					return err
				}
				if !copyPassword {
					fmt.Fprintf(c.out, "username: %s\npassword: %s\n", rec.Username, rec.Password)
					return nil
				}
				if err := clipboard.WriteAll(rec.Password); err != nil {
					return errors.WithHint(
						errors.Wrap(err, "copy password"),
						"run without --copy to print the password instead",
					)
				}
				fmt.Fprintf(c.out, "username: %s\npassword copied to clipboard\n", rec.Username)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&copyPassword, "copy", "c", false, "copy the password to the clipboard instead of printing it")
	return cmd
}
