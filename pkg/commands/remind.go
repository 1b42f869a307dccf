package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"estuday/pkg/runner/remind"
)

func addRemind(topLevel *cobra.Command) {
	var once bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the reminder dispatch daemon",
		Example: `
estuday remind
estuday remind --once
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, sched, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := remind.Remind{
				Once:      once,
				Scheduler: sched,
			}
			return output.HandleError(s.Do(ctx))
		},
	}

	cmd.Flags().BoolVar(&once, "once", false,
		"Run a single sweep and exit instead of staying resident.")

	topLevel.AddCommand(cmd)
}
