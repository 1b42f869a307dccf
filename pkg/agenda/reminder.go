package agenda

import (
	"strconv"
	"time"
)

// Unit names the magnitude unit of a reminder lead time.
type Unit string

const (
	UnitMinutos Unit = "minutos"
	UnitHoras   Unit = "horas"
	UnitDias    Unit = "dias"
)

// ReminderSpec is one lead-time specification: fire Amount Units before the
// appointment's date and time.
type ReminderSpec struct {
	Enabled bool `json:"enabled"`
	Amount  int  `json:"tempo"`
	Unit    Unit `json:"unidade"`
}

// DefaultReminder is the configuration assumed for records persisted before
// reminders existed: one day ahead, disarmed.
func DefaultReminder() ReminderSpec {
	return ReminderSpec{Enabled: false, Amount: 1, Unit: UnitDias}
}

// Offset converts the spec into a duration. Unknown units resolve to zero.
func (r ReminderSpec) Offset() time.Duration {
	switch r.Unit {
	case UnitMinutos:
		return time.Duration(r.Amount) * time.Minute
	case UnitHoras:
		return time.Duration(r.Amount) * time.Hour
	case UnitDias:
		return time.Duration(r.Amount) * 24 * time.Hour
	}
	return 0
}

// Label renders the spec for reminder bodies, e.g. "1 dia" or "30 minutos".
func (r ReminderSpec) Label() string {
	unit := string(r.Unit)
	if r.Amount == 1 {
		switch r.Unit {
		case UnitMinutos:
			unit = "minuto"
		case UnitHoras:
			unit = "hora"
		case UnitDias:
			unit = "dia"
		}
	}
	return strconv.Itoa(r.Amount) + " " + unit
}

// FirstEnabled returns the spec that will actually be armed. Only a single
// reminder is scheduled per appointment even when several are configured.
func FirstEnabled(specs []ReminderSpec) (ReminderSpec, bool) {
	for _, s := range specs {
		if s.Enabled {
			return s, true
		}
	}
	return ReminderSpec{}, false
}
