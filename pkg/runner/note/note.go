// Package note provides runners for calendar note operations.
package note

import (
	"context"
	"errors"
	"fmt"

	"estuday/pkg/agenda"
	"estuday/pkg/dateutil"
	"estuday/pkg/planner"
	"estuday/pkg/printers"
)

// Add attaches a free-text note to a date.
type Add struct {
	Text    string
	Date    string
	Planner *planner.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not add note, no planner")
	}

	note, res, err := n.Planner.AddNote(ctx, &agenda.Note{Date: n.Date, Text: n.Text})
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title(dateutil.ToBR(note.Date))
	pp.Notes(n.Planner.NotesOn(note.Date)...)
	if !res.Persisted {
		fmt.Println("aviso: alteração não foi gravada no disco")
	}
	return nil
}

// List prints notes, optionally restricted to one date.
type List struct {
	Date    string
	ShowID  bool
	Planner *planner.Service
}

func (n *List) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not list notes, no planner")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.Date != "" {
		pp.Title(dateutil.ToBR(n.Date))
		pp.Notes(n.Planner.NotesOn(n.Date)...)
		return nil
	}
	all := n.Planner.Notes()
	pp.TitleWithCount("Anotações", len(all))
	pp.Notes(all...)
	return nil
}

// Remove deletes a note by id.
type Remove struct {
	ID      string
	Planner *planner.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not remove note, no planner")
	}

	before := len(n.Planner.Notes())
	if _, err := n.Planner.DeleteNote(ctx, n.ID); err != nil {
		return err
	}
	if len(n.Planner.Notes()) == before {
		fmt.Printf("anotação %s não encontrada\n", n.ID)
		return nil
	}
	fmt.Printf("anotação %s removida\n", n.ID)
	return nil
}
