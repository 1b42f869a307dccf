package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"estuday/pkg/agenda"
	"estuday/pkg/dateutil"
)

const gridWidth = len("Dom Seg Ter Qua Qui Sex Sáb")

// Month renders the calendar grid for the month containing on. Days carrying
// appointments are marked with a dot row under the number, days carrying
// notes with a tick; today is bold.
func (pp *PrettyPrint) Month(on time.Time, appts []*agenda.Appointment, notes []*agenda.Note) {
	year, month := on.Year(), on.Month()

	tf := color.New(color.FgWhite, color.Italic)
	head := fmt.Sprintf("%s %d", dateutil.MonthName(month), year)
	mid := (gridWidth - len([]rune(head))) / 2
	if mid < 0 {
		mid = 0
	}
	tf.Printf("%s%s\n", strings.Repeat(" ", mid), head)

	hd := color.New(color.Faint)
	hd.Println(strings.Join(dateutil.WeekDays(), " "))

	marked := make(map[string]bool, len(appts))
	for _, a := range appts {
		if a != nil {
			marked[a.Date] = true
		}
	}
	noted := make(map[string]bool, len(notes))
	for _, n := range notes {
		if n != nil {
			noted[n.Date] = true
		}
	}

	plain := color.New()
	today := color.New(color.Bold, color.Underline)
	busy := color.New(color.FgCyan)
	busyToday := color.New(color.Bold, color.Underline, color.FgCyan)

	// Pad out the first week.
	start := dateutil.StartWeekday(year, month)
	for i := time.Sunday; i < start; i++ {
		fmt.Print("    ")
	}

	d := start
	days := dateutil.DaysIn(year, month)
	for day := 1; day <= days; day++ {
		date := dateutil.DateString(year, month, day)

		printer := plain
		switch {
		case dateutil.IsToday(date) && (marked[date] || noted[date]):
			printer = busyToday
		case dateutil.IsToday(date):
			printer = today
		case marked[date] || noted[date]:
			printer = busy
		}

		suffix := " "
		if noted[date] {
			suffix = "·"
		}
		_, _ = printer.Printf("%3d", day)
		fmt.Print(suffix)

		d++
		if d > time.Saturday {
			d = time.Sunday
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}
