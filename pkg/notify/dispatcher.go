package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/gen2brain/beeep"
	"github.com/robfig/cron/v3"
)

// Dispatcher sweeps the pending alerts once a minute and delivers the due
// ones as desktop notifications. Delivery is fire-and-forget: a failed
// notification is reported and the alert dropped, never retried.
type Dispatcher struct {
	Scheduler *DiskScheduler

	// Deliver is replaceable for tests; defaults to a desktop notification.
	Deliver func(title, body string) error
}

// Run blocks sweeping until ctx is cancelled. A sweep also runs immediately
// so alerts due while the daemon was down fire on startup.
func (d *Dispatcher) Run(ctx context.Context) error {
	if d.Scheduler == nil {
		return fmt.Errorf("notify: dispatcher needs a scheduler")
	}

	d.Sweep(ctx)

	c := cron.New()
	if _, err := c.AddFunc("* * * * *", func() { d.Sweep(ctx) }); err != nil {
		return fmt.Errorf("notify: schedule sweep: %w", err)
	}
	c.Start()
	defer c.Stop()

	<-ctx.Done()
	return nil
}

// Sweep fires every alert whose time has come and erases it.
func (d *Dispatcher) Sweep(ctx context.Context) {
	now := d.Scheduler.now()
	for _, alert := range d.Scheduler.Pending(ctx) {
		if alert.FireAt.After(now) {
			continue
		}
		if err := d.deliver(alert.Title, alert.Body); err != nil {
			fmt.Fprintf(os.Stderr, "notify: deliver %s: %v\n", alert.ID, err)
		}
		if err := d.Scheduler.Cancel(ctx, alert.ID); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
}

func (d *Dispatcher) deliver(title, body string) error {
	if d.Deliver != nil {
		return d.Deliver(title, body)
	}
	return beeep.Notify(title, body, "")
}
