package agenda

import (
	"sort"
	"time"
)

// AppointmentsOn filters by exact date match, preserving stored order.
func AppointmentsOn(list []*Appointment, date string) []*Appointment {
	out := make([]*Appointment, 0)
	for _, a := range list {
		if a != nil && a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// NotesOn filters notes by exact date match.
func NotesOn(list []*Note, date string) []*Note {
	out := make([]*Note, 0)
	for _, n := range list {
		if n != nil && n.Date == date {
			out = append(out, n)
		}
	}
	return out
}

// Overdue reports whether the appointment's date and time, in local time,
// are strictly before now. Malformed dates or times are never overdue.
func Overdue(a *Appointment, now time.Time) bool {
	if a == nil {
		return false
	}
	at, err := a.At()
	if err != nil {
		return false
	}
	return at.Before(now)
}

// Upcoming returns appointments at or after now that are not done, ascending
// by date and time, truncated to limit. A non-positive limit means no cap.
func Upcoming(list []*Appointment, now time.Time, limit int) []*Appointment {
	type timed struct {
		at   time.Time
		appt *Appointment
	}
	pending := make([]timed, 0, len(list))
	for _, a := range list {
		if a == nil || a.Done {
			continue
		}
		at, err := a.At()
		if err != nil || at.Before(now) {
			continue
		}
		pending = append(pending, timed{at: at, appt: a})
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].at.Before(pending[j].at)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	out := make([]*Appointment, len(pending))
	for i, p := range pending {
		out[i] = p.appt
	}
	return out
}
