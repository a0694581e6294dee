package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"passvault/internal/domain"
)

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(func(sess *domain.Session) error {
				entries, err := c.app.Vault.ListEntries(sess)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "SERVICE\tUSERNAME")
				for _, name := range entries.Names() {
					fmt.Fprintf(tw, "%s\t%s\n", name, entries[name].Username)
				}
				return tw.Flush()
			})
		},
	}
}
