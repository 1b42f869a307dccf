// Package calendar provides the runner for the month-grid view.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"estuday/pkg/planner"
	"estuday/pkg/printers"
)

// Calendar prints the month grid with appointment and note marks.
type Calendar struct {
	// Month selects the month as "2006-01"; empty means the current month.
	Month string

	Planner *planner.Service
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not show calendar, no planner")
	}

	on := time.Now()
	if n.Month != "" {
		parsed, err := time.ParseInLocation("2006-01", n.Month, time.Local)
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", n.Month)
		}
		on = parsed
	}

	pp := printers.PrettyPrint{}
	pp.Month(on, n.Planner.Appointments(), n.Planner.Notes())
	return nil
}
