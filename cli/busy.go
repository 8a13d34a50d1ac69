package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{}

// busyModel shows a spinner until fn returns. Keys are ignored: the
// backend call cannot be interrupted.
type busyModel struct {
	spinner spinner.Model
	title   string
	fn      func()
	done    bool
}

func newBusyModel(title string, fn func()) busyModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return busyModel{spinner: s, title: title, fn: fn}
}

func (m busyModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m busyModel) run() tea.Msg {
	m.fn()
	return doneMsg{}
}

func (m busyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m busyModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.title)
}
