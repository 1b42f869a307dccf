// Package ui provides the runner for the interactive month view.
package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"estuday/pkg/planner"
	"estuday/pkg/tui"
)

// UI runs the full-screen month view against a loaded planner.
type UI struct {
	Planner *planner.Service
}

func (u *UI) Do(ctx context.Context) error {
	if u.Planner == nil {
		return errors.New("can not run ui, no planner")
	}

	p := tea.NewProgram(tui.New(ctx, u.Planner), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
