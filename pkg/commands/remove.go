package commands

import (
	"context"

	"github.com/spf13/cobra"

	"estuday/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an appointment",
		Example: `
estuday rm 171dff69-f8b9-4dca-9a2b-0c1d2e3f4a5b
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := remove.Remove{
				ID:      args[0],
				Planner: svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
