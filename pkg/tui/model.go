package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"estuday/pkg/agenda"
	"estuday/pkg/dateutil"
	"estuday/pkg/planner"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Faint(true)
	todayStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	busyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).PaddingLeft(1)
	statusStyle   = lipgloss.NewStyle().Faint(true)
)

// changedMsg arrives when the planner broadcasts a mutation, from this
// process or from another one editing the same database.
type changedMsg struct{}

// Model is the month-view terminal UI. Arrow keys move the day cursor,
// "a" opens a quick note prompt for the selected day, space toggles the
// first appointment of the day.
type Model struct {
	svc *planner.Service
	ctx context.Context

	now     func() time.Time
	year    int
	month   time.Month
	day     int
	input   textinput.Model
	writing bool
	status  string
	changes <-chan planner.Change
	cancel  func()
	width   int
}

func New(ctx context.Context, svc *planner.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "anotação"
	ti.CharLimit = 200

	now := time.Now
	t := now()
	changes, cancel := svc.Subscribe()
	return Model{
		svc:     svc,
		ctx:     ctx,
		now:     now,
		year:    t.Year(),
		month:   t.Month(),
		day:     t.Day(),
		input:   ti,
		changes: changes,
		cancel:  cancel,
	}
}

func (m Model) Init() tea.Cmd {
	return m.awaitChange()
}

func (m Model) awaitChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m Model) selectedDate() string {
	return dateutil.DateString(m.year, m.month, m.day)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case changedMsg:
		return m, m.awaitChange()
	case tea.KeyMsg:
		if m.writing {
			return m.updateInput(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.writing = false
		m.input.Reset()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		m.writing = false
		m.input.Reset()
		if text == "" {
			return m, nil
		}
		_, res, err := m.svc.AddNote(m.ctx, &agenda.Note{Date: m.selectedDate(), Text: text})
		switch {
		case err != nil:
			m.status = err.Error()
		case !res.Persisted:
			m.status = "anotação não gravada no disco"
		default:
			m.status = "anotação adicionada"
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case "left", "h":
		m.moveDay(-1)
	case "right", "l":
		m.moveDay(1)
	case "up", "k":
		m.moveDay(-7)
	case "down", "j":
		m.moveDay(7)
	case "pgup", "p":
		m.moveMonth(-1)
	case "pgdown", "n":
		m.moveMonth(1)
	case "t":
		t := m.now()
		m.year, m.month, m.day = t.Year(), t.Month(), t.Day()
	case "a":
		m.writing = true
		m.input.Focus()
		return m, textinput.Blink
	case " ":
		m.toggleFirst()
	}
	return m, nil
}

func (m *Model) moveDay(delta int) {
	m.day += delta
	for m.day < 1 {
		m.moveMonth(-1)
		m.day += dateutil.DaysIn(m.year, m.month)
	}
	for m.day > dateutil.DaysIn(m.year, m.month) {
		m.day -= dateutil.DaysIn(m.year, m.month)
		m.moveMonth(1)
	}
}

func (m *Model) moveMonth(delta int) {
	mo := int(m.month) + delta
	for mo < 1 {
		mo += 12
		m.year--
	}
	for mo > 12 {
		mo -= 12
		m.year++
	}
	m.month = time.Month(mo)
	if max := dateutil.DaysIn(m.year, m.month); m.day > max {
		m.day = max
	}
}

func (m *Model) toggleFirst() {
	appts := m.svc.AppointmentsOn(m.selectedDate())
	if len(appts) == 0 {
		m.status = "nenhum compromisso no dia"
		return
	}
	a := appts[0]
	ok, res, err := m.svc.ToggleDone(m.ctx, a.ID)
	switch {
	case err != nil:
		m.status = err.Error()
	case !ok:
		m.status = "compromisso não encontrado"
	case !res.Persisted:
		m.status = "alteração não gravada no disco"
	default:
		m.status = fmt.Sprintf("%q atualizado", a.Title)
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", dateutil.MonthName(m.month), m.year)))
	b.WriteString("\n")
	for _, wd := range dateutil.WeekDays() {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%4s", wd)))
	}
	b.WriteString("\n")
	b.WriteString(m.grid())
	b.WriteString("\n")
	b.WriteString(m.dayPanel())

	if m.writing {
		b.WriteString("\n" + m.input.View())
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	b.WriteString("\n" + statusStyle.Render("setas mover · n/p mês · t hoje · a anotar · espaço concluir · q sair"))
	return b.String()
}

func (m Model) grid() string {
	busy := map[int]bool{}
	for _, a := range m.svc.Appointments() {
		if y, mo, d, ok := splitDate(a.Date); ok && y == m.year && mo == m.month {
			busy[d] = true
		}
	}

	t := m.now()
	today := 0
	if t.Year() == m.year && t.Month() == m.month {
		today = t.Day()
	}

	var b strings.Builder
	col := dateutil.StartWeekday(m.year, m.month)
	b.WriteString(strings.Repeat("    ", int(col)))
	for d := 1; d <= dateutil.DaysIn(m.year, m.month); d++ {
		cell := fmt.Sprintf("%3d", d)
		switch {
		case d == m.day:
			cell = selectedStyle.Render(cell)
		case d == today:
			cell = todayStyle.Render(cell)
		case busy[d]:
			cell = busyStyle.Render(cell)
		}
		b.WriteString(cell + " ")
		col++
		if col == 7 {
			col = 0
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) dayPanel() string {
	date := m.selectedDate()
	var lines []string
	lines = append(lines, titleStyle.Render(dateutil.ToBR(date)))

	appts := m.svc.AppointmentsOn(date)
	notes := m.svc.NotesOn(date)
	if len(appts) == 0 && len(notes) == 0 {
		lines = append(lines, headerStyle.Render("nada agendado"))
	}
	now := m.now()
	for _, a := range appts {
		line := fmt.Sprintf("%s  %s (%s)", a.Time, a.Title, a.Category)
		switch {
		case a.Done:
			line = doneStyle.Render(line)
		case agenda.Overdue(a, now):
			line = overdueStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for _, n := range notes {
		lines = append(lines, "⁃ "+n.Text)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func splitDate(date string) (year int, month time.Month, day int, ok bool) {
	t, err := dateutil.Parse(date)
	if err != nil {
		return 0, 0, 0, false
	}
	return t.Year(), t.Month(), t.Day(), true
}
