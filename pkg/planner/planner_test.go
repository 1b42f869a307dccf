package planner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estuday/pkg/agenda"
	"estuday/pkg/store"
)

type fakePersistence struct {
	appointments []*agenda.Appointment
	notes        []*agenda.Note
	profile      agenda.Profile
	hasProfile   bool

	failWrites bool
	failReads  bool
	saves      int
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{profile: agenda.DefaultProfile()}
}

func (f *fakePersistence) LoadAppointments() ([]*agenda.Appointment, error) {
	if f.failReads {
		return []*agenda.Appointment{}, errors.New("decode compromissos")
	}
	out := make([]*agenda.Appointment, len(f.appointments))
	for i, a := range f.appointments {
		out[i] = a.Clone()
	}
	return out, nil
}

func (f *fakePersistence) SaveAppointments(list []*agenda.Appointment) error {
	if f.failWrites {
		return errors.New("disk full")
	}
	f.saves++
	f.appointments = make([]*agenda.Appointment, len(list))
	for i, a := range list {
		f.appointments[i] = a.Clone()
	}
	return nil
}

func (f *fakePersistence) LoadNotes() ([]*agenda.Note, error) {
	if f.failReads {
		return []*agenda.Note{}, errors.New("decode anotacoes")
	}
	out := make([]*agenda.Note, len(f.notes))
	for i, n := range f.notes {
		out[i] = n.Clone()
	}
	return out, nil
}

func (f *fakePersistence) SaveNotes(list []*agenda.Note) error {
	if f.failWrites {
		return errors.New("disk full")
	}
	f.saves++
	f.notes = make([]*agenda.Note, len(list))
	for i, n := range list {
		f.notes[i] = n.Clone()
	}
	return nil
}

func (f *fakePersistence) LoadProfile() (agenda.Profile, error) {
	if f.failReads {
		return agenda.DefaultProfile(), errors.New("decode perfil")
	}
	if !f.hasProfile {
		return agenda.DefaultProfile(), nil
	}
	return f.profile, nil
}

func (f *fakePersistence) SaveProfile(p agenda.Profile) error {
	if f.failWrites {
		return errors.New("disk full")
	}
	f.saves++
	f.profile = p
	f.hasProfile = true
	return nil
}

func (f *fakePersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	close(ch)
	return ch, nil
}

type fakeScheduler struct {
	nextHandle string
	failNext   bool

	scheduled []string // appointment titles
	cancelled []string // handles
}

func (f *fakeScheduler) Schedule(ctx context.Context, appt *agenda.Appointment, spec agenda.ReminderSpec) (string, error) {
	if f.failNext {
		f.failNext = false
		return "", errors.New("permission denied")
	}
	f.scheduled = append(f.scheduled, appt.Title)
	return f.nextHandle, nil
}

func (f *fakeScheduler) Cancel(ctx context.Context, handle string) error {
	f.cancelled = append(f.cancelled, handle)
	return nil
}

func newService(t *testing.T) (*Service, *fakePersistence, *fakeScheduler) {
	t.Helper()
	p := newFakePersistence()
	sched := &fakeScheduler{nextHandle: "handle-1"}
	svc := New(p, sched)
	require.NoError(t, svc.Load(context.Background()))
	t.Cleanup(svc.Close)
	return svc, p, sched
}

func prova() *agenda.Appointment {
	return &agenda.Appointment{
		Title:    "Prova",
		Date:     "2025-03-10",
		Time:     "08:00",
		Category: agenda.CategoryProva,
		Reminders: []agenda.ReminderSpec{
			{Enabled: true, Amount: 1, Unit: agenda.UnitDias},
		},
	}
}

func TestAddAppointmentAssignsDisjointIDs(t *testing.T) {
	svc, _, _ := newService(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		appt, _, err := svc.AddAppointment(context.Background(), prova())
		require.NoError(t, err)
		require.NotEmpty(t, appt.ID)
		require.False(t, seen[appt.ID], "id %s assigned twice", appt.ID)
		seen[appt.ID] = true
	}
}

func TestAddAppointmentArmsReminderAndPersists(t *testing.T) {
	svc, p, sched := newService(t)

	appt, res, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)
	assert.True(t, res.Scheduled)
	assert.Equal(t, "handle-1", res.Handle)
	assert.Equal(t, "handle-1", appt.NotificationID)
	assert.True(t, res.Persisted)
	assert.Equal(t, []string{"Prova"}, sched.scheduled)
	require.Len(t, p.appointments, 1)
	assert.Equal(t, appt.ID, p.appointments[0].ID)
}

func TestAddAppointmentCommitsWhenSchedulingFails(t *testing.T) {
	svc, p, sched := newService(t)
	sched.failNext = true

	appt, res, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err, "scheduling failure must not fail the add")
	assert.False(t, res.Scheduled)
	assert.Empty(t, appt.NotificationID)
	assert.Len(t, p.appointments, 1)
}

func TestAddAppointmentSkipsSchedulerWhenNoReminderEnabled(t *testing.T) {
	svc, _, sched := newService(t)

	input := prova()
	input.Reminders = []agenda.ReminderSpec{{Enabled: false, Amount: 1, Unit: agenda.UnitDias}}
	_, res, err := svc.AddAppointment(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, res.Scheduled)
	assert.Empty(t, sched.scheduled)
}

func TestAddAppointmentValidationAbortsBeforeSideEffects(t *testing.T) {
	svc, p, sched := newService(t)

	input := prova()
	input.Title = ""
	_, _, err := svc.AddAppointment(context.Background(), input)
	require.ErrorIs(t, err, agenda.ErrEmptyTitle)
	assert.Empty(t, sched.scheduled, "scheduler must not run on validation error")
	assert.Empty(t, p.appointments)
	assert.Empty(t, svc.Appointments())
}

func TestUpdateAppointmentNeverChangesID(t *testing.T) {
	svc, _, _ := newService(t)

	appt, _, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)

	edited := appt.Clone()
	edited.Title = "Prova final"
	updated, _, err := svc.UpdateAppointment(context.Background(), edited)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, appt.ID, updated.ID)
}

func TestUpdateAppointmentCancelsThenRearms(t *testing.T) {
	svc, _, sched := newService(t)

	appt, _, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)
	require.Equal(t, "handle-1", appt.NotificationID)

	sched.nextHandle = "handle-2"
	updated, res, err := svc.UpdateAppointment(context.Background(), appt)
	require.NoError(t, err)
	assert.Equal(t, []string{"handle-1"}, sched.cancelled)
	assert.Equal(t, "handle-2", updated.NotificationID)
	assert.True(t, res.Scheduled)
}

func TestUpdateAppointmentPreservesUnexposedHandle(t *testing.T) {
	svc, _, sched := newService(t)

	appt, _, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)

	// An edit surface that does not expose the handle sends it empty; the
	// stored handle must still be cancelled.
	edited := appt.Clone()
	edited.NotificationID = ""
	edited.Description = "sala 201"
	_, _, err = svc.UpdateAppointment(context.Background(), edited)
	require.NoError(t, err)
	assert.Equal(t, []string{"handle-1"}, sched.cancelled)
}

func TestUpdateAppointmentUnknownIDIsNoop(t *testing.T) {
	svc, _, sched := newService(t)

	ghost := prova()
	ghost.ID = "missing"
	updated, res, err := svc.UpdateAppointment(context.Background(), ghost)
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.True(t, res.Persisted, "nothing pending, same as an unknown delete")
	assert.Empty(t, sched.cancelled)
	assert.Empty(t, sched.scheduled)
}

func TestUpdateNoteUnknownIDIsNoop(t *testing.T) {
	svc, p, _ := newService(t)

	updated, res, err := svc.UpdateNote(context.Background(), &agenda.Note{ID: "missing", Date: "2025-03-10", Text: "x"})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.True(t, res.Persisted)
	assert.Zero(t, p.saves)
}

func TestDeleteAppointmentCancelsReminder(t *testing.T) {
	svc, p, sched := newService(t)

	appt, _, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)

	_, err = svc.DeleteAppointment(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"handle-1"}, sched.cancelled)
	assert.Empty(t, svc.Appointments())
	assert.Empty(t, p.appointments)
}

func TestDeleteAppointmentUnknownIDIsNoop(t *testing.T) {
	svc, _, sched := newService(t)

	_, _, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)

	_, err = svc.DeleteAppointment(context.Background(), "missing")
	require.NoError(t, err)
	assert.Len(t, svc.Appointments(), 1)
	assert.Empty(t, sched.cancelled)
}

func TestToggleDoneTwiceRestoresOriginal(t *testing.T) {
	svc, _, sched := newService(t)

	appt, _, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)
	require.False(t, appt.Done)

	ok, _, err := svc.ToggleDone(context.Background(), appt.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, svc.Appointments()[0].Done)

	ok, _, err = svc.ToggleDone(context.Background(), appt.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, svc.Appointments()[0].Done)

	// Toggling completion never touches the reminder.
	assert.Empty(t, sched.cancelled)
	assert.Equal(t, "handle-1", svc.Appointments()[0].NotificationID)
}

func TestToggleDoneUnknownID(t *testing.T) {
	svc, _, _ := newService(t)
	ok, _, err := svc.ToggleDone(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotesLifecycle(t *testing.T) {
	svc, p, _ := newService(t)

	note, res, err := svc.AddNote(context.Background(), &agenda.Note{Date: "2025-03-10", Text: "estudar"})
	require.NoError(t, err)
	require.NotEmpty(t, note.ID)
	assert.True(t, res.Persisted)

	note.Text = "estudar mais"
	updated, _, err := svc.UpdateNote(context.Background(), note)
	require.NoError(t, err)
	assert.Equal(t, "estudar mais", updated.Text)
	assert.Equal(t, "estudar mais", p.notes[0].Text)

	_, err = svc.DeleteNote(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Empty(t, svc.Notes())
}

func TestAddNoteValidation(t *testing.T) {
	svc, _, _ := newService(t)
	_, _, err := svc.AddNote(context.Background(), &agenda.Note{Date: "2025-03-10"})
	require.ErrorIs(t, err, agenda.ErrEmptyText)
}

func TestDeleteUnknownNoteLeavesCollectionUnchanged(t *testing.T) {
	svc, _, _ := newService(t)

	_, _, err := svc.AddNote(context.Background(), &agenda.Note{Date: "2025-03-10", Text: "oi"})
	require.NoError(t, err)

	_, err = svc.DeleteNote(context.Background(), "missing")
	require.NoError(t, err)
	assert.Len(t, svc.Notes(), 1)
}

func TestUpdateProfileRecomputesCustomized(t *testing.T) {
	svc, p, _ := newService(t)

	prof, _, err := svc.UpdateProfile(context.Background(), agenda.Profile{Name: "Ana"})
	require.NoError(t, err)
	assert.True(t, prof.Customized)
	assert.True(t, p.profile.Customized)

	prof, _, err = svc.UpdateProfile(context.Background(), agenda.Profile{Name: agenda.DefaultName, Customized: true})
	require.NoError(t, err)
	assert.False(t, prof.Customized, "flag must be recomputed, not copied")
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	svc, p, _ := newService(t)
	p.failWrites = true

	appt, res, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err, "persist failure must not fail the operation")
	assert.False(t, res.Persisted)
	require.Len(t, svc.Appointments(), 1)
	assert.Equal(t, appt.ID, svc.Appointments()[0].ID)
	assert.Empty(t, p.appointments, "durable copy lags until the next write")
}

func TestSubscribeReceivesCommittedChanges(t *testing.T) {
	svc, _, _ := newService(t)

	ch, cancel := svc.Subscribe()
	defer cancel()

	_, _, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)

	select {
	case c := <-ch:
		assert.Equal(t, store.KindAppointments, c.Kind)
	case <-time.After(time.Second):
		t.Fatal("no change notification received")
	}

	_, _, err = svc.AddNote(context.Background(), &agenda.Note{Date: "2025-03-10", Text: "oi"})
	require.NoError(t, err)
	select {
	case c := <-ch:
		assert.Equal(t, store.KindNotes, c.Kind)
	case <-time.After(time.Second):
		t.Fatal("no change notification received")
	}
}

func TestCloseStopsOperationsAndSubscribers(t *testing.T) {
	svc, _, _ := newService(t)
	ch, _ := svc.Subscribe()

	svc.Close()

	_, ok := <-ch
	assert.False(t, ok, "subscriber channel must close")

	_, _, err := svc.AddAppointment(context.Background(), prova())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLoadUpgradesProfileFlag(t *testing.T) {
	p := newFakePersistence()
	p.hasProfile = true
	p.profile = agenda.Profile{Name: "Ana", Customized: false}

	svc := New(p, nil)
	require.NoError(t, svc.Load(context.Background()))
	defer svc.Close()

	assert.True(t, svc.Profile().Customized, "legacy profile flag computed at load")
}

func TestLoadDegradesToDefaultsWhenRecordsUnreadable(t *testing.T) {
	p := newFakePersistence()
	p.failReads = true

	svc := New(p, nil)
	require.NoError(t, svc.Load(context.Background()), "unreadable records must not fail startup")
	defer svc.Close()

	assert.Empty(t, svc.Appointments())
	assert.Empty(t, svc.Notes())
	assert.Equal(t, agenda.DefaultProfile(), svc.Profile())

	// The container stays writable after the degraded load.
	p.failReads = false
	_, res, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)
	assert.True(t, res.Persisted)
}

type dirConfig struct {
	path string
}

func (d dirConfig) BasePath() string { return d.path }

func TestLoadSucceedsOverCorruptStoredRecord(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, store.KeyAppointments), []byte("{not json"), 0o644))

	p, err := store.Load(dirConfig{path: base})
	require.NoError(t, err)

	svc := New(p, nil)
	require.NoError(t, svc.Load(context.Background()))
	defer svc.Close()

	assert.Empty(t, svc.Appointments())
}

func TestQueriesPassthrough(t *testing.T) {
	svc, _, _ := newService(t)

	_, _, err := svc.AddAppointment(context.Background(), prova())
	require.NoError(t, err)
	other := prova()
	other.Date = "2025-03-11"
	_, _, err = svc.AddAppointment(context.Background(), other)
	require.NoError(t, err)

	assert.Len(t, svc.AppointmentsOn("2025-03-10"), 1)
	assert.Len(t, svc.AppointmentsOn("2025-03-11"), 1)

	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	up := svc.Upcoming(now, 1)
	require.Len(t, up, 1)
	assert.Equal(t, "2025-03-10", up[0].Date)
}
