package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the account and its vault to a JSON or YAML file",
		Long: "Write the account and its vault to path. Paths ending in .yaml or .yml\n" +
			"are written as YAML, anything else as JSON. Service passwords are\n" +
			"written in clear text.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(func(sess *domain.Session) error {
				if err := c.app.Vault.ExportData(sess, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Exported %s to %s\n", sess.Username, args[0])
				return nil
			})
		},
	}
}
