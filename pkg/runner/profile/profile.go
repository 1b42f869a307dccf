// Package profile provides the runner for viewing and editing the user
// profile.
package profile

import (
	"context"
	"errors"
	"fmt"

	"estuday/pkg/agenda"
	"estuday/pkg/planner"
	"estuday/pkg/printers"
)

// Profile shows or updates the display identity. With no edit flags set it
// only prints the greeting and current values.
type Profile struct {
	Name  string
	Photo string
	Reset bool

	Planner *planner.Service
}

func (n *Profile) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not edit profile, no planner")
	}

	current := n.Planner.Profile()

	switch {
	case n.Reset:
		updated, _, err := n.Planner.UpdateProfile(ctx, agenda.DefaultProfile())
		if err != nil {
			return err
		}
		current = updated
	case n.Name != "" || n.Photo != "":
		next := current
		if n.Name != "" {
			next.Name = n.Name
		}
		if n.Photo != "" {
			next.PhotoURI = n.Photo
		}
		updated, _, err := n.Planner.UpdateProfile(ctx, next)
		if err != nil {
			return err
		}
		current = updated
	}

	pp := printers.PrettyPrint{}
	pp.Greeting(current)
	fmt.Printf("nome: %s\n", current.Name)
	if current.PhotoURI != "" {
		fmt.Printf("foto: %s\n", current.PhotoURI)
	}
	return nil
}
