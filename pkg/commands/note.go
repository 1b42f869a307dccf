package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"estuday/pkg/commands/options"
	"estuday/pkg/runner/note"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Work with calendar notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNoteAdd(cmd)
	addNoteList(cmd)
	addNoteRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addNoteAdd(topLevel *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "add [texto]",
		Short: "Attach a note to a date",
		Example: `
estuday note add "revisar capítulo 4" --date 2025-03-10
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := do.GetDate()
			if err != nil {
				return output.HandleError(err)
			}

			svc, _, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := note.Add{
				Text:    strings.Join(args, " "),
				Date:    date,
				Planner: svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addNoteList(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Example: `
estuday note list
estuday note list --date 10/03/2025 --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := note.List{
				ShowID:  io.ShowID,
				Planner: svc,
			}
			if do.DateString != "" {
				date, err := do.GetDate()
				if err != nil {
					return output.HandleError(err)
				}
				s.Date = date
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddDateArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addNoteRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadPlanner(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			s := note.Remove{
				ID:      args[0],
				Planner: svc,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
