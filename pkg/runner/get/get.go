// Package get provides the runner for listing appointments.
package get

import (
	"context"
	"errors"
	"time"

	"estuday/pkg/agenda"
	"estuday/pkg/dateutil"
	"estuday/pkg/planner"
	"estuday/pkg/printers"
)

// Get lists appointments filtered by date, window, or overdue status.
type Get struct {
	ShowID   bool
	Date     string
	Upcoming int
	Overdue  bool
	All      bool

	Planner *planner.Service
}

// Do renders the selected view.
func (n *Get) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not get, no planner")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	now := time.Now()

	switch {
	case n.All:
		all := n.Planner.Appointments()
		pp.TitleWithCount("Compromissos", len(all))
		pp.Appointments(now, all...)

	case n.Overdue:
		var late []*agenda.Appointment
		for _, a := range n.Planner.Appointments() {
			if !a.Done && agenda.Overdue(a, now) {
				late = append(late, a)
			}
		}
		pp.TitleWithCount("Atrasados", len(late))
		pp.Appointments(now, late...)

	case n.Upcoming > 0:
		up := n.Planner.Upcoming(now, n.Upcoming)
		pp.TitleWithCount("Próximos", len(up))
		pp.Appointments(now, up...)

	default:
		date := n.Date
		if date == "" {
			date = dateutil.Format(now)
		}
		day := n.Planner.AppointmentsOn(date)
		pp.Title(dateutil.ToBR(date))
		pp.Appointments(now, day...)
	}
	return nil
}
