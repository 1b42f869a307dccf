package agenda

import "errors"

var ErrEmptyText = errors.New("agenda: texto must not be empty")

// Note is a free-text annotation attached to a calendar date. Multiple notes
// may share a date.
type Note struct {
	ID   string `json:"id"`
	Date string `json:"data"`
	Text string `json:"texto"`
}

// Validate rejects notes missing required fields.
func (n *Note) Validate() error {
	if n.Text == "" {
		return ErrEmptyText
	}
	if n.Date == "" {
		return ErrEmptyDate
	}
	return nil
}

// Clone returns a copy of the note.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	cp := *n
	return &cp
}
