// Package remind provides the runner for the reminder dispatch daemon.
package remind

import (
	"context"
	"errors"
	"fmt"

	"estuday/pkg/notify"
)

// Remind sweeps pending alerts and delivers the due ones as desktop
// notifications. With Once set it runs a single sweep and returns.
type Remind struct {
	Once bool

	Scheduler *notify.DiskScheduler
}

func (n *Remind) Do(ctx context.Context) error {
	if n.Scheduler == nil {
		return errors.New("can not run reminders, no scheduler")
	}

	d := &notify.Dispatcher{Scheduler: n.Scheduler}
	if n.Once {
		d.Sweep(ctx)
		return nil
	}

	fmt.Println("aguardando lembretes (ctrl-c para sair)")
	return d.Run(ctx)
}
