// Package planner holds the single source of truth for appointments, notes,
// and the user profile. Every mutation flows through a central action set,
// runs its side effects first, applies the in-memory transition, persists the
// changed record, and then notifies subscribers.
package planner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"estuday/pkg/agenda"
	"estuday/pkg/notify"
	"estuday/pkg/store"
)

// CommitResult reports what a mutation actually achieved beyond the
// in-memory transition, which always succeeds once validation passes.
// Side effects are advisory: a false field never means the operation failed.
type CommitResult struct {
	// Scheduled is true when a reminder was armed for the record.
	Scheduled bool
	// Handle is the armed reminder's handle, empty when nothing was armed.
	Handle string
	// Persisted is false when the storage write failed; in-memory state
	// stays authoritative for the session.
	Persisted bool
}

// Change notifies subscribers that a record kind committed a transition.
type Change struct {
	Kind store.Kind
}

var ErrClosed = errors.New("planner: service is closed")

// Service is the application state container. Construct with New, load once,
// and tear down with Close. All mutations are serialized internally.
type Service struct {
	mu sync.Mutex

	persistence store.Persistence
	scheduler   notify.Scheduler

	appointments []*agenda.Appointment
	notes        []*agenda.Note
	profile      agenda.Profile

	subs    map[int]chan Change
	nextSub int
	closed  bool

	newID func() string
}

// New wires the container to its collaborators. The scheduler may be
// notify.Noop on platforms without reminder support.
func New(p store.Persistence, s notify.Scheduler) *Service {
	if s == nil {
		s = notify.Noop{}
	}
	return &Service{
		persistence:  p,
		scheduler:    s,
		appointments: []*agenda.Appointment{},
		notes:        []*agenda.Note{},
		profile:      agenda.DefaultProfile(),
		subs:         make(map[int]chan Change),
		newID:        uuid.NewString,
	}
}

// Load reads the three records from storage. Absent or unreadable records
// default to empty collections and the guest profile, with unreadable ones
// reported to stderr; legacy reminder configurations are upgraded in memory
// only, and the profile flag is recomputed once.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	// A record that cannot be read comes back as its default value alongside
	// the error. Report and continue so one bad record does not take the
	// whole planner down.
	appts, err := s.persistence.LoadAppointments()
	if err != nil {
		fmt.Fprintf(os.Stderr, "planner: load appointments: %v\n", err)
	}
	notes, err := s.persistence.LoadNotes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "planner: load notes: %v\n", err)
	}
	prof, err := s.persistence.LoadProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "planner: load profile: %v\n", err)
	}
	prof.Recompute()

	s.appointments = appts
	s.notes = notes
	s.profile = prof
	return nil
}

// Close tears the container down and closes all subscriber channels.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// Subscribe returns a channel receiving a Change after every committed
// transition, plus a cancel func. Lagging subscribers drop events.
func (s *Service) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Change, 16)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			close(sub)
			delete(s.subs, id)
		}
	}
}

// Watch exposes the storage-level watcher for cross-process refresh.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.persistence.Watch(ctx)
}

// AddAppointment validates the input, attempts to arm the first enabled
// reminder, assigns a fresh id, and commits. The returned record carries
// whatever handle scheduling produced, possibly none.
func (s *Service) AddAppointment(ctx context.Context, input *agenda.Appointment) (*agenda.Appointment, CommitResult, error) {
	if err := input.Validate(); err != nil {
		return nil, CommitResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, CommitResult{}, ErrClosed
	}

	appt := input.Clone()
	appt.ID = s.newID()
	appt.NotificationID = ""

	res := CommitResult{}
	if spec, ok := agenda.FirstEnabled(appt.Reminders); ok {
		handle, err := s.scheduler.Schedule(ctx, appt, spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "planner: schedule reminder: %v\n", err)
		}
		appt.NotificationID = handle
		res.Scheduled = handle != ""
		res.Handle = handle
	}

	res.Persisted = s.commit(action{typ: actionAddAppointment, appointment: appt})
	return appt.Clone(), res, nil
}

// UpdateAppointment cancels any existing reminder handle unconditionally,
// re-arms per the record's current configuration, and commits the full
// replacement. The id never changes. An unknown id is a no-op returning a
// nil record.
func (s *Service) UpdateAppointment(ctx context.Context, appt *agenda.Appointment) (*agenda.Appointment, CommitResult, error) {
	if err := appt.Validate(); err != nil {
		return nil, CommitResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, CommitResult{}, ErrClosed
	}

	existing := s.find(appt.ID)
	if existing == nil {
		return nil, CommitResult{Persisted: true}, nil
	}

	// Preserve the armed handle when the caller's edit surface did not carry
	// it, then disarm before re-arming.
	handle := appt.NotificationID
	if handle == "" {
		handle = existing.NotificationID
	}
	if handle != "" {
		if err := s.scheduler.Cancel(ctx, handle); err != nil {
			fmt.Fprintf(os.Stderr, "planner: cancel reminder: %v\n", err)
		}
	}

	updated := appt.Clone()
	updated.NotificationID = ""

	res := CommitResult{}
	if spec, ok := agenda.FirstEnabled(updated.Reminders); ok {
		newHandle, err := s.scheduler.Schedule(ctx, updated, spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "planner: schedule reminder: %v\n", err)
		}
		updated.NotificationID = newHandle
		res.Scheduled = newHandle != ""
		res.Handle = newHandle
	}

	res.Persisted = s.commit(action{typ: actionUpdateAppointment, appointment: updated})
	return updated.Clone(), res, nil
}

// DeleteAppointment cancels the record's reminder and removes it. Unknown
// ids are a no-op, not an error.
func (s *Service) DeleteAppointment(ctx context.Context, id string) (CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return CommitResult{}, ErrClosed
	}

	existing := s.find(id)
	if existing == nil {
		return CommitResult{Persisted: true}, nil
	}
	if existing.NotificationID != "" {
		if err := s.scheduler.Cancel(ctx, existing.NotificationID); err != nil {
			fmt.Fprintf(os.Stderr, "planner: cancel reminder: %v\n", err)
		}
	}

	res := CommitResult{Persisted: s.commit(action{typ: actionDeleteAppointment, id: id})}
	return res, nil
}

// ToggleDone flips the completion flag in place, leaving reminder state and
// configuration untouched. Returns false when the id is unknown.
func (s *Service) ToggleDone(ctx context.Context, id string) (bool, CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, CommitResult{}, ErrClosed
	}

	existing := s.find(id)
	if existing == nil {
		return false, CommitResult{}, nil
	}
	updated := existing.Clone()
	updated.Done = !updated.Done

	res := CommitResult{Persisted: s.commit(action{typ: actionUpdateAppointment, appointment: updated})}
	return true, res, nil
}

// AddNote validates and commits a new note. Notes have no side channel.
func (s *Service) AddNote(ctx context.Context, input *agenda.Note) (*agenda.Note, CommitResult, error) {
	if err := input.Validate(); err != nil {
		return nil, CommitResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, CommitResult{}, ErrClosed
	}

	note := input.Clone()
	note.ID = s.newID()
	res := CommitResult{Persisted: s.commit(action{typ: actionAddNote, note: note})}
	return note.Clone(), res, nil
}

// UpdateNote commits a full replacement. Unknown ids are a no-op.
func (s *Service) UpdateNote(ctx context.Context, note *agenda.Note) (*agenda.Note, CommitResult, error) {
	if err := note.Validate(); err != nil {
		return nil, CommitResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, CommitResult{}, ErrClosed
	}

	if s.findNote(note.ID) == nil {
		return nil, CommitResult{Persisted: true}, nil
	}
	updated := note.Clone()
	res := CommitResult{Persisted: s.commit(action{typ: actionUpdateNote, note: updated})}
	return updated.Clone(), res, nil
}

// DeleteNote removes the note. Unknown ids are a no-op.
func (s *Service) DeleteNote(ctx context.Context, id string) (CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return CommitResult{}, ErrClosed
	}

	if s.findNote(id) == nil {
		return CommitResult{Persisted: true}, nil
	}
	res := CommitResult{Persisted: s.commit(action{typ: actionDeleteNote, id: id})}
	return res, nil
}

// UpdateProfile recomputes the customization flag and commits.
func (s *Service) UpdateProfile(ctx context.Context, p agenda.Profile) (agenda.Profile, CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return agenda.Profile{}, CommitResult{}, ErrClosed
	}

	if p.Name == "" {
		p.Name = agenda.DefaultName
	}
	p.Recompute()
	res := CommitResult{Persisted: s.commit(action{typ: actionSetProfile, profile: &p})}
	return p, res, nil
}

// Appointments returns a copy of the appointment collection in stored order.
func (s *Service) Appointments() []*agenda.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*agenda.Appointment, len(s.appointments))
	for i, a := range s.appointments {
		out[i] = a.Clone()
	}
	return out
}

// Notes returns a copy of the note collection in stored order.
func (s *Service) Notes() []*agenda.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*agenda.Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.Clone()
	}
	return out
}

// Profile returns the current profile.
func (s *Service) Profile() agenda.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// AppointmentsOn filters the collection by exact date.
func (s *Service) AppointmentsOn(date string) []*agenda.Appointment {
	return agenda.AppointmentsOn(s.Appointments(), date)
}

// NotesOn filters the notes by exact date.
func (s *Service) NotesOn(date string) []*agenda.Note {
	return agenda.NotesOn(s.Notes(), date)
}

// Upcoming lists not-done appointments at or after now, soonest first.
func (s *Service) Upcoming(now time.Time, limit int) []*agenda.Appointment {
	return agenda.Upcoming(s.Appointments(), now, limit)
}

func (s *Service) find(id string) *agenda.Appointment {
	for _, a := range s.appointments {
		if a != nil && a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Service) findNote(id string) *agenda.Note {
	for _, n := range s.notes {
		if n != nil && n.ID == id {
			return n
		}
	}
	return nil
}
