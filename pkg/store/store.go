// Package store persists the planner state as flat JSON records in a local
// diskv database. Three top-level records exist: the appointment list, the
// note list, and the user profile. Each is written independently after every
// state change; there is no cross-record transaction, the planner is the
// single writer.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"estuday/pkg/agenda"
)

// Record keys inside the database directory.
const (
	KeyAppointments = "compromissos"
	KeyNotes        = "anotacoes"
	KeyProfile      = "perfil"
)

// Persistence defines the durable-state contract for the planner.
type Persistence interface {
	LoadAppointments() ([]*agenda.Appointment, error)
	SaveAppointments(list []*agenda.Appointment) error
	LoadNotes() ([]*agenda.Note, error)
	SaveNotes(list []*agenda.Note) error
	LoadProfile() (agenda.Profile, error)
	SaveProfile(p agenda.Profile) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// read returns the raw record, or nil when the key has never been written.
func (p *persistence) read(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, nil
	}
	data, err := p.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return data, nil
}

func (p *persistence) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) LoadAppointments() ([]*agenda.Appointment, error) {
	data, err := p.read(KeyAppointments)
	if err != nil || data == nil {
		return []*agenda.Appointment{}, err
	}
	var list []*agenda.Appointment
	if err := json.Unmarshal(data, &list); err != nil {
		return []*agenda.Appointment{}, fmt.Errorf("store: decode %s: %w", KeyAppointments, err)
	}
	if list == nil {
		list = []*agenda.Appointment{}
	}
	return list, nil
}

func (p *persistence) SaveAppointments(list []*agenda.Appointment) error {
	if list == nil {
		list = []*agenda.Appointment{}
	}
	return p.write(KeyAppointments, list)
}

func (p *persistence) LoadNotes() ([]*agenda.Note, error) {
	data, err := p.read(KeyNotes)
	if err != nil || data == nil {
		return []*agenda.Note{}, err
	}
	var list []*agenda.Note
	if err := json.Unmarshal(data, &list); err != nil {
		return []*agenda.Note{}, fmt.Errorf("store: decode %s: %w", KeyNotes, err)
	}
	if list == nil {
		list = []*agenda.Note{}
	}
	return list, nil
}

func (p *persistence) SaveNotes(list []*agenda.Note) error {
	if list == nil {
		list = []*agenda.Note{}
	}
	return p.write(KeyNotes, list)
}

func (p *persistence) LoadProfile() (agenda.Profile, error) {
	data, err := p.read(KeyProfile)
	if err != nil || data == nil {
		return agenda.DefaultProfile(), err
	}
	var prof agenda.Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return agenda.DefaultProfile(), fmt.Errorf("store: decode %s: %w", KeyProfile, err)
	}
	if prof.Name == "" {
		prof.Name = agenda.DefaultName
	}
	return prof, nil
}

func (p *persistence) SaveProfile(prof agenda.Profile) error {
	return p.write(KeyProfile, prof)
}

var errNoBasePath = errors.New("store: base path unknown")
