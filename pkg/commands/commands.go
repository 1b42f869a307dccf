package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"estuday/pkg/commands/options"
	"estuday/pkg/notify"
	"estuday/pkg/planner"
	"estuday/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "estuday",
		Short: base.Wrap80("Study planning on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addDone(topLevel)
	addRemove(topLevel)
	addNote(topLevel)
	addProfile(topLevel)
	addCalendar(topLevel)
	addRemind(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
}

// loadPlanner boots the state container against the configured database.
// Reminder scheduling degrades to a no-op when disabled for the platform.
func loadPlanner(ctx context.Context) (*planner.Service, *notify.DiskScheduler, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}

	sched := notify.NewDiskScheduler(cfg.BasePath())
	var scheduler notify.Scheduler = sched
	if os.Getenv("ESTUDAY_NO_NOTIFY") != "" {
		scheduler = notify.Noop{}
	}

	svc := planner.New(p, scheduler)
	if err := svc.Load(ctx); err != nil {
		svc.Close()
		return nil, nil, err
	}
	return svc, sched, nil
}
