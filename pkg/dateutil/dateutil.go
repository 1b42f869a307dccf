// Package dateutil converts between ISO date strings, Brazilian display
// strings, and calendar grid coordinates.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// LayoutISO is the storage format for calendar dates.
	LayoutISO = "2006-01-02"
	// LayoutBR is the display format used across the CLI.
	LayoutBR = "02/01/2006"
	// LayoutClock is the storage format for times of day.
	LayoutClock = "15:04"
)

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var weekDays = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// Format renders t as an ISO date string.
func Format(t time.Time) string {
	return t.Format(LayoutISO)
}

// Parse reads an ISO date string into a local-midnight time.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutISO, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("dateutil: parse %q: %w", s, err)
	}
	return t, nil
}

// ToBR converts an ISO date string to DD/MM/YYYY. Malformed input is
// returned unchanged.
func ToBR(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return fmt.Sprintf("%s/%s/%s", parts[2], parts[1], parts[0])
}

// FromBR converts a DD/MM/YYYY string to ISO, zero padding short fields.
func FromBR(br string) string {
	parts := strings.Split(br, "/")
	if len(parts) != 3 {
		return br
	}
	return fmt.Sprintf("%s-%02s-%02s", parts[2], parts[1], parts[0])
}

// IsToday reports whether the ISO date string names the current local day.
func IsToday(iso string) bool {
	return iso == Format(time.Now())
}

// IsFuture reports whether the ISO date string is today or later. The
// comparison is lexical, which is safe for zero-padded ISO dates.
func IsFuture(iso string) bool {
	return iso >= Format(time.Now())
}

// MonthName returns the Portuguese name for month (1..12).
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[month-1]
}

// WeekDays returns the Sunday-first weekday abbreviations for the grid header.
func WeekDays() []string {
	out := make([]string, len(weekDays))
	copy(out, weekDays)
	return out
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartWeekday returns the weekday the month begins on, for padding the
// first grid row.
func StartWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// DateString builds the ISO string for a grid cell.
func DateString(year int, month time.Month, day int) string {
	return Format(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
}

// ApplyMask reshapes raw digit input into progressive DD/MM/YYYY form, used
// by text-entry surfaces.
func ApplyMask(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n := digits.String()
	switch {
	case len(n) <= 2:
		return n
	case len(n) <= 4:
		return n[:2] + "/" + n[2:]
	default:
		if len(n) > 8 {
			n = n[:8]
		}
		return n[:2] + "/" + n[2:4] + "/" + n[4:]
	}
}

// ValidBR reports whether a DD/MM/YYYY string names a real calendar date.
func ValidBR(s string) bool {
	if len(s) != 10 {
		return false
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && t.Month() == time.Month(month) && t.Year() == year
}
