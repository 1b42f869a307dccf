package planner

import (
	"fmt"
	"os"

	"estuday/pkg/agenda"
	"estuday/pkg/store"
)

// The action set mirrors the transitions the container supports. Keeping the
// state transition in one reduce step makes every mutation auditable.
type actionType int

const (
	actionAddAppointment actionType = iota
	actionUpdateAppointment
	actionDeleteAppointment
	actionAddNote
	actionUpdateNote
	actionDeleteNote
	actionSetProfile
)

type action struct {
	typ         actionType
	appointment *agenda.Appointment
	note        *agenda.Note
	profile     *agenda.Profile
	id          string
}

// commit applies the transition, persists the affected record, and notifies
// subscribers. The in-memory transition is unconditional; a failed
// persistence write is reported and leaves this session authoritative.
// Callers must hold s.mu.
func (s *Service) commit(a action) bool {
	kind := s.reduce(a)
	persisted := true
	if err := s.persist(kind); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		persisted = false
	}
	s.broadcast(Change{Kind: kind})
	return persisted
}

func (s *Service) reduce(a action) store.Kind {
	switch a.typ {
	case actionAddAppointment:
		s.appointments = append(s.appointments, a.appointment)
		return store.KindAppointments

	case actionUpdateAppointment:
		for i, existing := range s.appointments {
			if existing != nil && existing.ID == a.appointment.ID {
				s.appointments[i] = a.appointment
				break
			}
		}
		return store.KindAppointments

	case actionDeleteAppointment:
		kept := s.appointments[:0]
		for _, existing := range s.appointments {
			if existing == nil || existing.ID != a.id {
				kept = append(kept, existing)
			}
		}
		s.appointments = kept
		return store.KindAppointments

	case actionAddNote:
		s.notes = append(s.notes, a.note)
		return store.KindNotes

	case actionUpdateNote:
		for i, existing := range s.notes {
			if existing != nil && existing.ID == a.note.ID {
				s.notes[i] = a.note
				break
			}
		}
		return store.KindNotes

	case actionDeleteNote:
		kept := s.notes[:0]
		for _, existing := range s.notes {
			if existing == nil || existing.ID != a.id {
				kept = append(kept, existing)
			}
		}
		s.notes = kept
		return store.KindNotes

	case actionSetProfile:
		s.profile = *a.profile
		return store.KindProfile
	}
	return store.KindUnknown
}

func (s *Service) persist(kind store.Kind) error {
	switch kind {
	case store.KindAppointments:
		return s.persistence.SaveAppointments(s.appointments)
	case store.KindNotes:
		return s.persistence.SaveNotes(s.notes)
	case store.KindProfile:
		return s.persistence.SaveProfile(s.profile)
	}
	return nil
}

func (s *Service) broadcast(c Change) {
	for _, ch := range s.subs {
		select {
		case ch <- c:
		default:
			// Lagging subscriber, drop. The next change or a manual refresh
			// catches it up.
		}
	}
}
