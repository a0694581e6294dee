package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered usernames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range c.app.Registry.Usernames() {
				fmt.Fprintln(c.out, name)
			}
			return nil
		},
	}
}
