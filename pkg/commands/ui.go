package commands

import (
	"github.com/spf13/cobra"

	"estuday/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse the agenda in an interactive month view",
		Example: `
estuday ui
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			u := ui.UI{
				Planner: svc,
			}
			return output.HandleError(u.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
