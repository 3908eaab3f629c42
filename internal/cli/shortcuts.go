package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/theplant/datefilter"
)

func (a *app) shortcutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shortcuts",
		Short: "List the canned filters with their ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			rows := lo.Map(datefilter.Shortcuts(), func(sc datefilter.Shortcut, _ int) Row {
				return newRow(sc.Name, sc.Filter, s)
			})
			return NewOutputWriter(cmd.OutOrStdout(), s.output, s.now).Write(rows)
		},
	}
}
