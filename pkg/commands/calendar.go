package commands

import (
	"context"

	"github.com/spf13/cobra"

	"estuday/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	var month string

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show the month grid",
		Example: `
estuday calendar
estuday calendar --month 2025-03
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := calendar.Calendar{
				Month:   month,
				Planner: svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "",
		`Month to show, example: --month 2025-03. Defaults to the current month.`)

	topLevel.AddCommand(cmd)
}
