package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/santiagomed/synapse/config"
	"github.com/santiagomed/synapse/fs"
	"github.com/santiagomed/synapse/llm"
	"github.com/santiagomed/synapse/logger"
)

type State int

const (
	AwaitingConfig State = iota
	AwaitingProject
	Idle
	ActionInFlight
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingConfig:
		return "AwaitingConfig"
	case AwaitingProject:
		return "AwaitingProject"
	case Idle:
		return "Idle"
	case ActionInFlight:
		return "ActionInFlight"
	case Terminated:
		return "Terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// QuitKey ends the menu loop. It is the only way out of a session.
const QuitKey = "q"

// ClientFactory builds the backend of a run; llm.NewClient in production.
type ClientFactory func(ctx context.Context, cfg *config.Config, l logger.Logger) (llm.LlmClient, error)

// Action is a menu entry handler. Errors it returns are reported to the
// user and the menu is shown again.
type Action struct {
	Key   string
	Label string
	Run   func(ctx context.Context, s *Session) error
}

// Session is one interactive run. The config and the backend client are
// set once by Configure and never replaced.
type Session struct {
	fs      *fs.FileSystem
	ui      Prompter
	logger  logger.Logger
	cfg     *config.Config
	client  llm.LlmClient
	state   State
	project string
	actions map[string]Action
	menu    []MenuOption
}

func NewSession(fileSystem *fs.FileSystem, ui Prompter, l logger.Logger) *Session {
	if l == nil {
		l = logger.NewNullLogger()
	}
	s := &Session{
		fs:      fileSystem,
		ui:      ui,
		logger:  l,
		state:   AwaitingConfig,
		actions: map[string]Action{},
	}
	for _, a := range defaultActions() {
		s.register(a)
	}
	s.menu = append(s.menu, MenuOption{Key: QuitKey, Label: "Quit"})
	return s
}

func (s *Session) register(a Action) {
	s.actions[a.Key] = a
	s.menu = append(s.menu, MenuOption{Key: a.Key, Label: a.Label})
}

func (s *Session) State() State           { return s.state }
func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Project() string        { return s.project }
func (s *Session) Client() llm.LlmClient  { return s.client }

// Configure loads the config file and builds the backend. Any failure
// terminates the session before the menu is ever shown.
func (s *Session) Configure(ctx context.Context, configPath string, newClient ClientFactory) error {
	if s.state != AwaitingConfig {
		return fmt.Errorf("session already configured")
	}

	cfg, err := config.LoadConfigFs(s.fs.Fs, configPath)
	if err != nil {
		s.state = Terminated
		s.logger.WithField("error", err.Error()).Error("Failed to load config")
		return err
	}

	client, err := newClient(ctx, cfg, s.logger)
	if err != nil {
		s.state = Terminated
		s.logger.WithField("error", err.Error()).Error("Could not initialize AI provider")
		return fmt.Errorf("could not initialize AI provider: %w", err)
	}

	s.cfg = cfg
	s.client = client
	s.state = AwaitingProject
	s.logger.WithField("provider", client.Name()).WithField("model", client.Model()).Info("Session configured")
	return nil
}

// Run asks for the project path and then serves the menu until the user
// quits. The path is not checked here; each action validates what it needs.
func (s *Session) Run(ctx context.Context) error {
	if s.state != AwaitingProject {
		return fmt.Errorf("session cannot run from state %s", s.state)
	}

	path, err := s.ui.Ask("Please enter the full path to the ASP.NET project", "/path/to/MyWebApp")
	if err != nil {
		return s.terminate(err)
	}
	s.project = strings.TrimSpace(path)
	if s.project != "" {
		s.project = filepath.Clean(s.project)
	}
	s.logger.WithField("project", s.project).Info("Project selected")
	s.state = Idle

	for {
		key, err := s.ui.Select("What would you like to do?", s.menu)
		if err != nil {
			return s.terminate(err)
		}
		if key == QuitKey {
			return s.terminate(nil)
		}

		action, ok := s.actions[key]
		if !ok {
			s.ui.Error(fmt.Sprintf("Invalid choice %q. Please pick one of the listed actions.", key))
			continue
		}

		s.state = ActionInFlight
		l := s.logger.WithField("action", action.Label)
		l.Info("Action started")
		if err := action.Run(ctx, s); err != nil {
			if errors.Is(err, ErrAborted) {
				s.ui.Warn("Action cancelled.")
			} else {
				s.ui.Error(err.Error())
			}
			l.WithField("error", err.Error()).Warn("Action ended with an error")
		} else {
			l.Info("Action completed")
		}
		s.state = Idle
	}
}

// terminate ends the loop. A cancelled prompt counts as quitting.
func (s *Session) terminate(err error) error {
	s.state = Terminated
	s.logger.Info("Session terminated")
	if err == nil || errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}
