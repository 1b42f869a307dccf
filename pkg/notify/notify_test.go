package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estuday/pkg/agenda"
)

func newTestScheduler(t *testing.T, now time.Time) *DiskScheduler {
	t.Helper()
	s := NewDiskScheduler(t.TempDir())
	s.now = func() time.Time { return now }
	return s
}

func prova() *agenda.Appointment {
	return &agenda.Appointment{
		ID:       "a1",
		Title:    "Prova",
		Date:     "2025-03-10",
		Time:     "08:00",
		Category: agenda.CategoryProva,
	}
}

func TestScheduleArmsFutureAlert(t *testing.T) {
	// One day before 2025-03-10T08:00 is 2025-03-09T08:00, still ahead.
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	s := newTestScheduler(t, now)

	handle, err := s.Schedule(context.Background(), prova(),
		agenda.ReminderSpec{Enabled: true, Amount: 1, Unit: agenda.UnitDias})
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	pending := s.Pending(context.Background())
	require.Len(t, pending, 1)
	assert.Equal(t, handle, pending[0].ID)
	assert.Equal(t, time.Date(2025, time.March, 9, 8, 0, 0, 0, time.Local), pending[0].FireAt)
	assert.Contains(t, pending[0].Body, "Prova")
	assert.Contains(t, pending[0].Body, "1 dia")
}

func TestSchedulePastFireTimeReturnsAbsent(t *testing.T) {
	// Past the one-day-before mark: nothing must be armed.
	now := time.Date(2025, time.March, 9, 9, 0, 0, 0, time.Local)
	s := newTestScheduler(t, now)

	handle, err := s.Schedule(context.Background(), prova(),
		agenda.ReminderSpec{Enabled: true, Amount: 1, Unit: agenda.UnitDias})
	require.NoError(t, err)
	assert.Empty(t, handle)
	assert.Empty(t, s.Pending(context.Background()))
}

func TestScheduleExactlyNowReturnsAbsent(t *testing.T) {
	now := time.Date(2025, time.March, 9, 8, 0, 0, 0, time.Local)
	s := newTestScheduler(t, now)

	handle, err := s.Schedule(context.Background(), prova(),
		agenda.ReminderSpec{Enabled: true, Amount: 1, Unit: agenda.UnitDias})
	require.NoError(t, err)
	assert.Empty(t, handle, "fireAt equal to now must not arm")
}

func TestCancelErasesAlert(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	s := newTestScheduler(t, now)

	handle, err := s.Schedule(context.Background(), prova(),
		agenda.ReminderSpec{Enabled: true, Amount: 2, Unit: agenda.UnitHoras})
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	require.NoError(t, s.Cancel(context.Background(), handle))
	assert.Empty(t, s.Pending(context.Background()))
}

func TestCancelUnknownHandleIsNoop(t *testing.T) {
	s := newTestScheduler(t, time.Now())
	assert.NoError(t, s.Cancel(context.Background(), "missing"))
	assert.NoError(t, s.Cancel(context.Background(), ""))
}

func TestSweepFiresDueAlertsOnly(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	s := newTestScheduler(t, now)

	due := prova()
	due.Date = "2025-03-01"
	due.Time = "08:00"
	_, err := s.Schedule(context.Background(), due,
		agenda.ReminderSpec{Enabled: true, Amount: 2, Unit: agenda.UnitHoras})
	require.NoError(t, err)

	later := prova()
	later.Date = "2025-04-01"
	_, err = s.Schedule(context.Background(), later,
		agenda.ReminderSpec{Enabled: true, Amount: 1, Unit: agenda.UnitDias})
	require.NoError(t, err)

	// Advance past the first alert's fire time.
	s.now = func() time.Time {
		return time.Date(2025, time.March, 1, 7, 0, 0, 0, time.Local)
	}

	var delivered []string
	d := &Dispatcher{
		Scheduler: s,
		Deliver: func(title, body string) error {
			delivered = append(delivered, body)
			return nil
		},
	}
	d.Sweep(context.Background())

	require.Len(t, delivered, 1)
	assert.Contains(t, delivered[0], "Prova")
	assert.Len(t, s.Pending(context.Background()), 1, "undue alert must stay pending")
}

func TestSweepDropsAlertWhenDeliveryFails(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	s := newTestScheduler(t, now)

	due := prova()
	due.Date = "2025-03-01"
	due.Time = "06:00"
	_, err := s.Schedule(context.Background(), due,
		agenda.ReminderSpec{Enabled: true, Amount: 1, Unit: agenda.UnitHoras})
	require.NoError(t, err)

	s.now = func() time.Time {
		return time.Date(2025, time.March, 1, 6, 0, 0, 0, time.Local)
	}
	d := &Dispatcher{
		Scheduler: s,
		Deliver: func(string, string) error {
			return assert.AnError
		},
	}
	d.Sweep(context.Background())

	assert.Empty(t, s.Pending(context.Background()), "failed delivery is dropped, not retried")
}

func TestNoopSchedulerNeverArms(t *testing.T) {
	var n Noop
	handle, err := n.Schedule(context.Background(), prova(),
		agenda.ReminderSpec{Enabled: true, Amount: 1, Unit: agenda.UnitDias})
	require.NoError(t, err)
	assert.Empty(t, handle)
	assert.NoError(t, n.Cancel(context.Background(), "anything"))
}
