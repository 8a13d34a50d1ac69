package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/santiagomed/synapse/core"
	"github.com/santiagomed/synapse/logger"
)

// Terminal is the interactive core.Prompter: huh forms for input, bubbletea
// programs for the spinner and the review pane, glamour for markdown.
type Terminal struct {
	out        io.Writer
	accessible bool
	renderer   *glamour.TermRenderer
	logger     logger.Logger
}

func NewTerminal(l logger.Logger) *Terminal {
	if l == nil {
		l = logger.NewNullLogger()
	}
	t := &Terminal{out: os.Stdout, logger: l}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		l.Warn(fmt.Sprintf("Markdown rendering disabled: %v", err))
	} else {
		t.renderer = r
	}
	return t
}

// SetAccessible switches to plain line-based prompts without full screen
// programs.
func (t *Terminal) SetAccessible(accessible bool) {
	t.accessible = accessible
}

func (t *Terminal) Ask(title, placeholder string) (string, error) {
	var v string
	err := t.run(huh.NewInput().Title(title).Placeholder(placeholder).Value(&v))
	return strings.TrimSpace(v), err
}

func (t *Terminal) Select(title string, options []core.MenuOption) (string, error) {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(fmt.Sprintf("%s. %s", o.Key, o.Label), o.Key)
	}
	var key string
	err := t.run(huh.NewSelect[string]().Title(title).Options(opts...).Value(&key))
	return key, err
}

func (t *Terminal) Review(a core.Artifact, diff string) (bool, error) {
	if t.accessible {
		return t.reviewPlain(a, diff)
	}

	final, err := tea.NewProgram(newReviewModel(a, diff), tea.WithAltScreen()).Run()
	if err != nil {
		t.logger.Warn(fmt.Sprintf("Review screen failed, falling back to plain output: %v", err))
		return t.reviewPlain(a, diff)
	}
	switch final.(reviewModel).decision {
	case accepted:
		return true, nil
	case aborted:
		return false, core.ErrAborted
	default:
		return false, nil
	}
}

func (t *Terminal) reviewPlain(a core.Artifact, diff string) (bool, error) {
	fmt.Fprintln(t.out, titleStyle.Render("--- Generated content for "+a.Path+" ---"))
	fmt.Fprintln(t.out, a.Content)
	if diff != "" {
		fmt.Fprintln(t.out, titleStyle.Render("--- Changes against the current file ---"))
		fmt.Fprintln(t.out, colorDiff(diff))
	}

	var ok bool
	err := t.run(huh.NewConfirm().
		Title(fmt.Sprintf("Save this content to %s?", a.Path)).
		Affirmative("Yes").
		Negative("No").
		Value(&ok))
	return ok, err
}

func (t *Terminal) Show(title, body string) {
	fmt.Fprintln(t.out, titleStyle.Render(title))
	fmt.Fprintln(t.out, t.markdown(body))
}

// Busy runs fn under a spinner. fn runs exactly once, even when the spinner
// program cannot start.
func (t *Terminal) Busy(title string, fn func()) {
	if t.accessible {
		fmt.Fprintln(t.out, faintStyle.Render(title))
		fn()
		return
	}

	var started atomic.Bool
	done := make(chan struct{})
	once := func() {
		if !started.CompareAndSwap(false, true) {
			return
		}
		defer close(done)
		fn()
	}

	if _, err := tea.NewProgram(newBusyModel(title, once)).Run(); err != nil {
		t.logger.Warn(fmt.Sprintf("Spinner failed: %v", err))
		once()
	}
	<-done
}

func (t *Terminal) Info(msg string)  { fmt.Fprintln(t.out, infoStyle.Render(msg)) }
func (t *Terminal) Warn(msg string)  { fmt.Fprintln(t.out, warnStyle.Render("Warning: "+msg)) }
func (t *Terminal) Error(msg string) { fmt.Fprintln(t.out, errorStyle.Render(msg)) }

func (t *Terminal) run(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).WithAccessible(t.accessible).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return core.ErrAborted
	}
	return err
}

func (t *Terminal) markdown(text string) string {
	if t.renderer == nil {
		return text
	}
	out, err := t.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
