// Package timeutil parses human-friendly reminder lead times.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"estuday/pkg/agenda"
)

var (
	leadPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-záç]+)\s*$`)
	unitMap     = map[string]agenda.Unit{
		"m":       agenda.UnitMinutos,
		"min":     agenda.UnitMinutos,
		"mins":    agenda.UnitMinutos,
		"minuto":  agenda.UnitMinutos,
		"minutos": agenda.UnitMinutos,
		"h":       agenda.UnitHoras,
		"hr":      agenda.UnitHoras,
		"hora":    agenda.UnitHoras,
		"horas":   agenda.UnitHoras,
		"d":       agenda.UnitDias,
		"dia":     agenda.UnitDias,
		"dias":    agenda.UnitDias,
	}
)

// ParseLead reads a lead-time string (for example "1d", "30m", or "2 horas")
// into an enabled reminder spec.
func ParseLead(input string) (agenda.ReminderSpec, error) {
	lower := strings.ToLower(strings.TrimSpace(input))
	matches := leadPattern.FindStringSubmatch(lower)
	if len(matches) != 3 {
		return agenda.ReminderSpec{}, fmt.Errorf("invalid lead time %q", input)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return agenda.ReminderSpec{}, fmt.Errorf("invalid lead value %q: %w", matches[1], err)
	}
	if value <= 0 {
		return agenda.ReminderSpec{}, fmt.Errorf("lead time must be greater than zero")
	}
	unit, ok := unitMap[matches[2]]
	if !ok {
		return agenda.ReminderSpec{}, fmt.Errorf("unsupported lead unit %q", matches[2])
	}

	return agenda.ReminderSpec{Enabled: true, Amount: value, Unit: unit}, nil
}

// ParseLeads parses a repeated flag into the normalized spec list.
func ParseLeads(inputs []string) ([]agenda.ReminderSpec, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	specs := make([]agenda.ReminderSpec, 0, len(inputs))
	for _, in := range inputs {
		spec, err := ParseLead(in)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
