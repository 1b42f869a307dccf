package commands

import (
	"context"

	"github.com/spf13/cobra"

	"estuday/pkg/commands/options"
	"estuday/pkg/runner/get"
)

func addList(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	io := &options.IDOptions{}
	var (
		upcoming int
		overdue  bool
		all      bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List appointments",
		Example: `
estuday list
estuday list --date 10/03/2025
estuday list --upcoming 5
estuday list --overdue
estuday list --all --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := get.Get{
				ShowID:   io.ShowID,
				Upcoming: upcoming,
				Overdue:  overdue,
				All:      all,
				Planner:  svc,
			}
			if do.DateString != "" {
				date, err := do.GetDate()
				if err != nil {
					return output.HandleError(err)
				}
				s.Date = date
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddDateArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().IntVarP(&upcoming, "upcoming", "u", 0,
		"Show the next N appointments that are not done.")
	cmd.Flags().BoolVar(&overdue, "overdue", false,
		"Show appointments whose time has passed and are not done.")
	cmd.Flags().BoolVar(&all, "all", false,
		"Show every appointment.")

	topLevel.AddCommand(cmd)
}
