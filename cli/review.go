package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/santiagomed/synapse/core"
)

type decision int

const (
	undecided decision = iota
	accepted
	declined
	aborted
)

// reviewModel shows a generated artifact in a scrollable pane and waits for
// y (save), n/esc (skip) or ctrl+c (abort). When the target file exists,
// d toggles between the generated content and the diff.
type reviewModel struct {
	viewport viewport.Model
	artifact core.Artifact
	diff     string
	showDiff bool
	ready    bool
	decision decision
}

func newReviewModel(a core.Artifact, diff string) reviewModel {
	return reviewModel{artifact: a, diff: diff, showDiff: diff != ""}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.decision = accepted
			return m, tea.Quit
		case "n", "N", "esc":
			m.decision = declined
			return m, tea.Quit
		case "ctrl+c":
			m.decision = aborted
			return m, tea.Quit
		case "d":
			if m.diff != "" {
				m.showDiff = !m.showDiff
				m.viewport.SetContent(m.content())
				m.viewport.GotoTop()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		height := msg.Height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.header(), m.viewport.View(), m.footer())
}

func (m reviewModel) header() string {
	label := "generated"
	if m.showDiff {
		label = "diff against current file"
	}
	return titleStyle.Render(m.artifact.Path) + " " + faintStyle.Render("("+label+")")
}

func (m reviewModel) footer() string {
	keys := "y save • n skip • ↑/↓ scroll"
	if m.diff != "" {
		keys += " • d toggle diff"
	}
	return faintStyle.Render(keys)
}

func (m reviewModel) content() string {
	if m.showDiff {
		return colorDiff(m.diff)
	}
	return m.artifact.Content
}

func colorDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = faintStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
