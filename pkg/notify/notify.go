// Package notify arms one-shot reminders for appointments. Scheduling is
// advisory: a reminder that cannot be armed or delivered never fails the
// owning planner operation.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"estuday/pkg/agenda"
	"estuday/pkg/dateutil"
)

// Scheduler arms and disarms one-shot reminders.
type Scheduler interface {
	// Schedule computes the fire time for the appointment and lead-time spec
	// and registers a pending alert. It returns an empty handle, and no
	// error, when the fire time is not strictly in the future.
	Schedule(ctx context.Context, appt *agenda.Appointment, spec agenda.ReminderSpec) (string, error)

	// Cancel disarms a previously returned handle. Unknown handles are a
	// no-op.
	Cancel(ctx context.Context, handle string) error
}

// Alert is a pending reminder, durable until it fires or is cancelled.
type Alert struct {
	ID     string    `json:"id"`
	FireAt time.Time `json:"fireAt"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
}

// alertsDir is the subdirectory of the database holding pending alerts. The
// planner's three records stay at the top level.
const alertsDir = "lembretes"

// DiskScheduler persists pending alerts in a diskv subspace of the planner
// database so a separate dispatch process can deliver them.
type DiskScheduler struct {
	d *diskv.Diskv

	// now is replaceable for tests.
	now func() time.Time
}

// NewDiskScheduler creates a scheduler storing alerts under the given
// database base path.
func NewDiskScheduler(basePath string) *DiskScheduler {
	return &DiskScheduler{
		d: diskv.New(diskv.Options{
			BasePath:     filepath.Join(basePath, alertsDir),
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		now: time.Now,
	}
}

// Schedule implements Scheduler.
func (s *DiskScheduler) Schedule(ctx context.Context, appt *agenda.Appointment, spec agenda.ReminderSpec) (string, error) {
	at, err := appt.At()
	if err != nil {
		return "", err
	}
	fireAt := at.Add(-spec.Offset())
	if !fireAt.After(s.now()) {
		// Never arm an alert for a time already past or equal to now.
		return "", nil
	}

	alert := Alert{
		ID:     uuid.NewString(),
		FireAt: fireAt,
		Title:  "Lembrete de Compromisso",
		Body: fmt.Sprintf("%s está agendado para %s às %s (%s antes)",
			appt.Title, dateutil.ToBR(appt.Date), appt.Time, spec.Label()),
	}
	data, err := json.Marshal(alert)
	if err != nil {
		return "", fmt.Errorf("notify: encode alert: %w", err)
	}
	if err := s.d.Write(alert.ID, data); err != nil {
		return "", fmt.Errorf("notify: store alert: %w", err)
	}
	return alert.ID, nil
}

// Cancel implements Scheduler. Best effort: an alert that no longer exists
// is not an error.
func (s *DiskScheduler) Cancel(ctx context.Context, handle string) error {
	if handle == "" || !s.d.Has(handle) {
		return nil
	}
	if err := s.d.Erase(handle); err != nil {
		return fmt.Errorf("notify: cancel %s: %w", handle, err)
	}
	return nil
}

// Pending returns all alerts still waiting to fire.
func (s *DiskScheduler) Pending(ctx context.Context) []Alert {
	out := make([]Alert, 0)
	for key := range s.d.Keys(ctx.Done()) {
		data, err := s.d.Read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "notify: read alert %s: %v\n", key, err)
			continue
		}
		var a Alert
		if err := json.Unmarshal(data, &a); err != nil {
			fmt.Fprintf(os.Stderr, "notify: decode alert %s: %v\n", key, err)
			continue
		}
		out = append(out, a)
	}
	return out
}

// Noop is the scheduler for platforms without local notification support.
// Every schedule attempt reports "nothing armed".
type Noop struct{}

func (Noop) Schedule(context.Context, *agenda.Appointment, agenda.ReminderSpec) (string, error) {
	return "", nil
}

func (Noop) Cancel(context.Context, string) error { return nil }
