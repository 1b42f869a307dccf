// Package printers renders planner records for the terminal.
package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"estuday/pkg/agenda"
	"estuday/pkg/dateutil"
)

type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("171dff69-f8b9-4dca  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" item")
	default:
		_, _ = c.Println(" itens")
	}
}

// Greeting prints the personalized or the guest salutation.
func (pp *PrettyPrint) Greeting(p agenda.Profile) {
	g := color.New(color.Bold)
	if p.Customized {
		_, _ = g.Printf("Olá, %s!\n", p.Name)
		return
	}
	_, _ = g.Println("Olá! Bons estudos.")
}

func categoryColor(c agenda.Category) *color.Color {
	switch c {
	case agenda.CategoryAula:
		return color.New(color.FgBlue)
	case agenda.CategoryProva:
		return color.New(color.FgRed)
	case agenda.CategoryTrabalho:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgWhite)
}

// Appointments renders a table of appointments with category labels, the
// completion mark, and an overdue badge.
func (pp *PrettyPrint) Appointments(now time.Time, appts ...*agenda.Appointment) {
	if len(appts) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" nenhum compromisso\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)
	overdue := color.New(color.FgRed, color.Bold)

	for _, a := range appts {
		if a == nil {
			continue
		}
		mark := "○"
		title := a.Title
		switch {
		case a.Done:
			mark = "✘"
			title = done.Sprint(a.Title)
		case agenda.Overdue(a, now):
			mark = overdue.Sprint("!")
			title = overdue.Sprint(a.Title)
		}
		label := categoryColor(a.Category).Sprint(string(a.Category))
		when := fmt.Sprintf("%s %s", dateutil.ToBR(a.Date), a.Time)

		if pp.ShowID {
			tbl.AddRow(y.Sprint(a.ID), mark, when, label, title)
		} else {
			tbl.AddRow(mark, when, label, title)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Notes renders a table of notes.
func (pp *PrettyPrint) Notes(notes ...*agenda.Note) {
	if len(notes) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" nenhuma anotação\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	for _, n := range notes {
		if n == nil {
			continue
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(n.ID), "⁃", dateutil.ToBR(n.Date), n.Text)
		} else {
			tbl.AddRow("⁃", dateutil.ToBR(n.Date), n.Text)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}
