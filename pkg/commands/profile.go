package commands

import (
	"context"

	"github.com/spf13/cobra"

	"estuday/pkg/runner/profile"
)

func addProfile(topLevel *cobra.Command) {
	var (
		name  string
		photo string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the user profile",
		Example: `
estuday profile
estuday profile --name Ana
estuday profile --photo file:///home/ana/foto.jpg
estuday profile --reset
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := profile.Profile{
				Name:    name,
				Photo:   photo,
				Reset:   reset,
				Planner: svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Set the display name.")
	cmd.Flags().StringVar(&photo, "photo", "", "Set the photo URI.")
	cmd.Flags().BoolVar(&reset, "reset", false, "Restore the guest profile.")

	topLevel.AddCommand(cmd)
}
