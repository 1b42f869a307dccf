// Package agenda defines the planner's domain records: appointments bound to
// a calendar date and time, free-text notes attached to dates, and the user
// profile. JSON field names follow the persisted layout so state written by
// earlier releases loads unchanged.
package agenda

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"estuday/pkg/dateutil"
)

// Category labels an appointment. Purely presentational, there is no
// behavioral difference between categories.
type Category string

const (
	CategoryAula     Category = "aula"
	CategoryProva    Category = "prova"
	CategoryTrabalho Category = "trabalho"
	CategoryOutro    Category = "outro"
)

// Categories lists the closed category set in display order.
func Categories() []Category {
	return []Category{CategoryAula, CategoryProva, CategoryTrabalho, CategoryOutro}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryAula, CategoryProva, CategoryTrabalho, CategoryOutro:
		return true
	}
	return false
}

var (
	ErrEmptyTitle  = errors.New("agenda: titulo must not be empty")
	ErrEmptyDate   = errors.New("agenda: data must not be empty")
	ErrEmptyTime   = errors.New("agenda: hora must not be empty")
	ErrBadDate     = errors.New("agenda: data must be YYYY-MM-DD")
	ErrBadTime     = errors.New("agenda: hora must be HH:MM")
	ErrBadCategory = errors.New("agenda: unknown categoria")
)

// Appointment is a scheduled, timed obligation ("compromisso").
type Appointment struct {
	ID          string   `json:"id"`
	Title       string   `json:"titulo"`
	Description string   `json:"descricao,omitempty"`
	Date        string   `json:"data"`
	Time        string   `json:"hora"`
	Category    Category `json:"categoria"`
	Done        bool     `json:"concluido"`

	// NotificationID holds the handle of the armed reminder, present only
	// while a scheduling attempt has succeeded.
	NotificationID string `json:"notificationId,omitempty"`

	// Reminders is the normalized lead-time list. Legacy single- and
	// multi-config shapes are upgraded into it on read.
	Reminders []ReminderSpec `json:"lembretes,omitempty"`
}

// Validate rejects records missing required fields before any side effect
// runs.
func (a *Appointment) Validate() error {
	switch {
	case a.Title == "":
		return ErrEmptyTitle
	case a.Date == "":
		return ErrEmptyDate
	case a.Time == "":
		return ErrEmptyTime
	}
	if _, err := dateutil.Parse(a.Date); err != nil {
		return ErrBadDate
	}
	if _, err := time.Parse(dateutil.LayoutClock, a.Time); err != nil {
		return ErrBadTime
	}
	if a.Category != "" && !a.Category.Valid() {
		return ErrBadCategory
	}
	return nil
}

// At resolves the appointment's date and time in the local zone.
func (a *Appointment) At() (time.Time, error) {
	t, err := time.ParseInLocation(dateutil.LayoutISO+"T"+dateutil.LayoutClock, a.Date+"T"+a.Time, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("agenda: resolve %q %q: %w", a.Date, a.Time, err)
	}
	return t, nil
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (a *Appointment) Clone() *Appointment {
	if a == nil {
		return nil
	}
	cp := *a
	if a.Reminders != nil {
		cp.Reminders = make([]ReminderSpec, len(a.Reminders))
		copy(cp.Reminders, a.Reminders)
	}
	return &cp
}

// appointmentJSON carries the legacy reminder shapes alongside the current
// list form for the upgrade step in UnmarshalJSON.
type appointmentJSON struct {
	ID          string   `json:"id"`
	Title       string   `json:"titulo"`
	Description string   `json:"descricao,omitempty"`
	Date        string   `json:"data"`
	Time        string   `json:"hora"`
	Category    Category `json:"categoria"`
	Done        bool     `json:"concluido"`

	NotificationID string         `json:"notificationId,omitempty"`
	Reminders      []ReminderSpec `json:"lembretes,omitempty"`

	LegacySingle *ReminderSpec `json:"notificationConfig,omitempty"`
	LegacyMulti  *struct {
		Notifications []ReminderSpec `json:"notifications"`
	} `json:"multipleNotificationConfig,omitempty"`
}

// UnmarshalJSON upgrades legacy reminder configurations into the normalized
// list. Records carrying no configuration at all default to a single
// disabled one-day spec. The legacy shapes are never written back.
func (a *Appointment) UnmarshalJSON(data []byte) error {
	var raw appointmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.ID = raw.ID
	a.Title = raw.Title
	a.Description = raw.Description
	a.Date = raw.Date
	a.Time = raw.Time
	a.Category = raw.Category
	a.Done = raw.Done
	a.NotificationID = raw.NotificationID

	switch {
	case len(raw.Reminders) > 0:
		a.Reminders = raw.Reminders
	case raw.LegacyMulti != nil && len(raw.LegacyMulti.Notifications) > 0:
		a.Reminders = raw.LegacyMulti.Notifications
	case raw.LegacySingle != nil:
		a.Reminders = []ReminderSpec{*raw.LegacySingle}
	default:
		a.Reminders = []ReminderSpec{DefaultReminder()}
	}
	return nil
}
