// Package complete provides the runner for toggling appointment completion.
package complete

import (
	"context"
	"errors"
	"fmt"
	"time"

	"estuday/pkg/planner"
	"estuday/pkg/printers"
)

// Complete flips the completion flag for the appointment ID.
type Complete struct {
	ID      string
	Planner *planner.Service
}

// Do executes the toggle for the configured appointment ID.
func (n *Complete) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not complete, no planner")
	}

	ok, _, err := n.Planner.ToggleDone(ctx, n.ID)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("compromisso %s não encontrado\n", n.ID)
		return nil
	}

	pp := printers.PrettyPrint{ShowID: true}
	fmt.Println("")
	pp.TitleWithCount("Compromissos", len(n.Planner.Appointments()))
	pp.Appointments(time.Now(), n.Planner.Appointments()...)
	return nil
}
