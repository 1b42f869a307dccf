// Package remove provides the runner for deleting appointments.
package remove

import (
	"context"
	"errors"
	"fmt"

	"estuday/pkg/planner"
)

// Remove deletes the appointment with the given ID. Deletion is immediate
// and permanent.
type Remove struct {
	ID      string
	Planner *planner.Service
}

// Do executes the removal. Unknown ids are reported but are not an error.
func (n *Remove) Do(ctx context.Context) error {
	if n.Planner == nil {
		return errors.New("can not remove, no planner")
	}

	before := len(n.Planner.Appointments())
	res, err := n.Planner.DeleteAppointment(ctx, n.ID)
	if err != nil {
		return err
	}
	if len(n.Planner.Appointments()) == before {
		fmt.Printf("compromisso %s não encontrado\n", n.ID)
		return nil
	}
	fmt.Printf("compromisso %s removido\n", n.ID)
	if !res.Persisted {
		fmt.Println("aviso: alteração não foi gravada no disco")
	}
	return nil
}
