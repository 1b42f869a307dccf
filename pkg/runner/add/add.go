// Package add provides the runner for creating appointments.
package add

import (
	"context"
	"errors"
	"fmt"
	"time"

	"estuday/pkg/agenda"
	"estuday/pkg/planner"
	"estuday/pkg/printers"
)

// Add creates one appointment with an optional set of reminder lead times.
type Add struct {
	Title       string
	Description string
	Date        string
	Time        string
	Category    agenda.Category
	Reminders   []agenda.ReminderSpec

	Planner *planner.Service
}

// Do executes the add and prints the day's agenda.
func (n *Add) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not add, no planner")
	}

	appt, res, err := n.Planner.AddAppointment(ctx, &agenda.Appointment{
		Title:       n.Title,
		Description: n.Description,
		Date:        n.Date,
		Time:        n.Time,
		Category:    n.Category,
		Reminders:   n.Reminders,
	})
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title(appt.Date)
	pp.Appointments(time.Now(), n.Planner.AppointmentsOn(appt.Date)...)

	if spec, ok := agenda.FirstEnabled(appt.Reminders); ok {
		if res.Scheduled {
			fmt.Printf("lembrete agendado para %s antes\n", spec.Label())
		} else {
			fmt.Println("lembrete não agendado")
		}
	}
	if !res.Persisted {
		fmt.Println("aviso: alteração não foi gravada no disco")
	}
	return nil
}
