package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"crypt/internal/driver"
)

// checkModel renders a running `crypt check`: one row per document with its
// state and parse time, the first line of any failure under its row, a
// tally of parsed, cached and failed documents and a progress bar.
type checkModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []row
	byPath  map[string]int
	width   int
	closed  bool
}

type row struct {
	path    string
	status  driver.Status
	elapsed time.Duration
	problem string
}

type tally struct {
	parsed, cached, failed int
}

func (t tally) finished() int { return t.parsed + t.cached + t.failed }

type (
	eventMsg  driver.Event
	closedMsg struct{}
)

const labelWidth = 7

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusStyles = map[driver.Status]lipgloss.Style{
		driver.StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		driver.StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.StatusCached:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		driver.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// NewProgressModel returns the Bubble Tea model for a check over files.
// It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyles[driver.StatusWorking]

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &checkModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]row, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.rows[i] = row{path: file, status: driver.StatusQueued}
		m.byPath[file] = i
	}
	return m
}

func (m *checkModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if !m.closed {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *checkModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

// apply records ev on its row; events for unknown paths are ignored.
func (m *checkModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &m.rows[i]
	r.status = ev.Status
	r.elapsed = ev.Elapsed
	if ev.Status == driver.StatusError && ev.Err != nil {
		r.problem, _, _ = strings.Cut(ev.Err.Error(), "\n")
	}
	return m.bar.SetPercent(m.fraction())
}

func (m *checkModel) tally() tally {
	var t tally
	for _, r := range m.rows {
		switch r.status {
		case driver.StatusDone:
			t.parsed++
		case driver.StatusCached:
			t.cached++
		case driver.StatusError:
			t.failed++
		}
	}
	return t
}

// fraction counts a document being parsed as half done.
func (m *checkModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	t := m.tally()
	working := 0
	for _, r := range m.rows {
		if r.status == driver.StatusWorking {
			working++
		}
	}
	return (float64(t.finished()) + 0.5*float64(working)) / float64(len(m.rows))
}

func (m *checkModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	t := m.tally()
	header := fmt.Sprintf("%s %d/%d", m.title, t.finished(), len(m.rows))
	if m.closed {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(header))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d ok, %d cached, %d failed)", t.parsed, t.cached, t.failed)))
	b.WriteString("\n\n")

	nameWidth := max(m.width-labelWidth-12, 20)
	for _, r := range m.rows {
		label := fmt.Sprintf("%*s", labelWidth, rowLabel(r.status))
		elapsed := "      "
		if r.elapsed > 0 {
			elapsed = fmt.Sprintf("%4dms", r.elapsed.Milliseconds())
		}
		fmt.Fprintf(&b, "  %s %s %s\n", statusStyles[r.status].Render(label), dimStyle.Render(elapsed), truncate(r.path, nameWidth))
		if r.problem != "" {
			indent := strings.Repeat(" ", labelWidth+3)
			fmt.Fprintf(&b, "%s└ %s\n", indent, problemStyle.Render(truncate(r.problem, max(m.width-labelWidth-6, 20))))
		}
	}

	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func rowLabel(s driver.Status) string {
	switch s {
	case driver.StatusWorking:
		return "parsing"
	case driver.StatusDone:
		return "ok"
	case driver.StatusCached:
		return "cached"
	case driver.StatusError:
		return "failed"
	default:
		return "queued"
	}
}

// truncate shortens value to width display cells, ending with "..." when
// there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
