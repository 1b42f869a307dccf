package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"estuday/pkg/agenda"
	"estuday/pkg/commands/options"
	"estuday/pkg/runner/add"
	"estuday/pkg/timeutil"
)

func addAdd(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	var (
		clock       string
		category    string
		description string
		leads       []string
	)

	cmd := &cobra.Command{
		Use:   "add [titulo]",
		Short: "Add an appointment",
		Example: `
estuday add "Prova de cálculo" --date 2025-03-10 --time 08:00 --category prova --remind 1d
estuday add "Entrega do trabalho" -d 20/04/2025 -t 23:59 -c trabalho --remind 1d --remind 2h
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := do.GetDate()
			if err != nil {
				return output.HandleError(err)
			}
			specs, err := timeutil.ParseLeads(leads)
			if err != nil {
				return output.HandleError(err)
			}

			svc, _, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := add.Add{
				Title:       strings.Join(args, " "),
				Description: description,
				Date:        date,
				Time:        clock,
				Category:    agenda.Category(category),
				Reminders:   specs,
				Planner:     svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddDateArgs(cmd, do)
	cmd.Flags().StringVarP(&clock, "time", "t", "",
		`Time of day, 24-hour HH:MM.`)
	cmd.Flags().StringVarP(&category, "category", "c", string(agenda.CategoryOutro),
		`Category: aula, prova, trabalho, or outro.`)
	cmd.Flags().StringVar(&description, "description", "",
		`Optional free-text description.`)
	cmd.Flags().StringArrayVar(&leads, "remind", nil,
		`Reminder lead time before the appointment, example: --remind 1d or --remind 30m. Repeatable; only the first is armed.`)

	topLevel.AddCommand(cmd)
}
