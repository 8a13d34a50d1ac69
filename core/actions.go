package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/santiagomed/synapse/analyzer"
	"github.com/santiagomed/synapse/llm"
	"github.com/santiagomed/synapse/utils"
)

var ErrInvalidEntityName = errors.New("invalid entity name")

const (
	DefaultContextName = "ApplicationDbContext"
	defaultNamespace   = "WebApp"
)

func defaultActions() []Action {
	return []Action{
		{Key: "1", Label: "Create a model", Run: createModel},
		{Key: "2", Label: "Create a controller", Run: createController},
		{Key: "3", Label: "Generate views (Index, Create, Edit, Details, Delete)", Run: generateViews},
		{Key: "4", Label: "Analyze project", Run: analyzeProject},
	}
}

func createModel(ctx context.Context, s *Session) error {
	if err := s.requireProject(); err != nil {
		return err
	}
	name, err := s.askEntityName("Model name", "Product")
	if err != nil {
		return err
	}
	properties, err := s.ui.Ask(fmt.Sprintf("Describe the properties of %s", name), "Name:string, Price:decimal, InStock:bool")
	if err != nil {
		return err
	}

	prompt := llm.ModelPrompt(name, properties, s.namespace())
	return s.generateAndSave(ctx, "model "+name, prompt, ModelPath(s.project, name))
}

func createController(ctx context.Context, s *Session) error {
	if err := s.requireProject(); err != nil {
		return err
	}
	name, err := s.askEntityName("Model the controller is for", "Product")
	if err != nil {
		return err
	}

	if c, err := analyzer.Classify(s.fs.Fs, s.project); err == nil {
		if !contains(c.Models, name) {
			s.ui.Warn(fmt.Sprintf("No %s%s found in %s. The controller will reference a model that does not exist yet.", name, analyzer.ModelSuffix, analyzer.ModelsDir))
		}
		if c.HasController(name) {
			s.ui.Warn(fmt.Sprintf("%s already has a controller.", name))
		}
	}

	contextName, err := s.ui.Ask("Database context class", DefaultContextName)
	if err != nil {
		return err
	}
	contextName = strings.TrimSpace(contextName)
	if contextName == "" {
		contextName = DefaultContextName
	}

	prompt := llm.ControllerPrompt(name, contextName, s.namespace())
	return s.generateAndSave(ctx, "controller "+name+"sController", prompt, ControllerPath(s.project, name))
}

// generateViews handles each view kind on its own. Only a cancelled prompt
// stops the remaining kinds.
func generateViews(ctx context.Context, s *Session) error {
	if err := s.requireProject(); err != nil {
		return err
	}
	name, err := s.askEntityName("Model the views are for", "Product")
	if err != nil {
		return err
	}
	properties, err := s.ui.Ask(fmt.Sprintf("Describe the properties of %s", name), "Name:string, Price:decimal, InStock:bool")
	if err != nil {
		return err
	}

	namespace := s.namespace()
	for _, kind := range llm.ViewKinds {
		prompt := llm.ViewPrompt(kind, name, properties, namespace)
		label := fmt.Sprintf("%s view for %s", kind, name)
		if err := s.generateAndSave(ctx, label, prompt, ViewPath(s.project, name, kind)); err != nil {
			return err
		}
	}
	return nil
}

func analyzeProject(ctx context.Context, s *Session) error {
	classification, err := analyzer.Classify(s.fs.Fs, s.project)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	stats, err := analyzer.CollectStats(s.fs.Fs, s.project)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := classification.Text() + "\n" + stats.Text()
	s.ui.Show("Analysis report", "```\n"+report+"```")

	var res llm.Result
	s.ui.Busy(fmt.Sprintf("Generating project summary with %s...", s.client.Name()), func() {
		res = llm.Generate(ctx, s.client, llm.ProjectSummaryPrompt(report), s.logger)
	})
	if !res.OK() {
		s.ui.Error(res.Text)
		return nil
	}
	s.ui.Show("AI project summary", res.Text)
	return nil
}

// generateAndSave asks the backend for one artifact, shows it and writes it
// only after the user confirmed. Generation and write failures are
// reported and swallowed; only prompt errors are returned.
func (s *Session) generateAndSave(ctx context.Context, label, prompt, path string) error {
	var res llm.Result
	s.ui.Busy(fmt.Sprintf("Generating %s with %s...", label, s.client.Name()), func() {
		res = llm.Generate(ctx, s.client, prompt, s.logger)
	})
	if !res.OK() {
		s.ui.Error(res.Text)
		return nil
	}

	a := Artifact{Path: path, Content: llm.CleanCode(res.Text)}
	diff := ""
	if s.fs.Exists(path) {
		current, err := s.fs.ReadFile(path)
		if err == nil {
			diff = unifiedDiff(s.relative(path), current, a.Content)
		}
		s.ui.Warn(fmt.Sprintf("%s already exists and will be overwritten if you save.", s.relative(path)))
	}

	ok, err := s.ui.Review(a, diff)
	if err != nil {
		return err
	}
	if !ok {
		s.ui.Info(fmt.Sprintf("Skipped %s.", s.relative(path)))
		s.logger.WithField("path", path).Info("Artifact discarded")
		return nil
	}

	if err := s.save(a); err != nil {
		s.ui.Error(err.Error())
	}
	return nil
}

func (s *Session) save(a Artifact) error {
	createdDir, err := s.fs.WriteFile(a.Path, a.Content)
	if createdDir {
		s.ui.Info(fmt.Sprintf("Created directory: %s", s.relative(filepath.Dir(a.Path))))
	}
	if err != nil {
		s.logger.WithField("path", a.Path).WithField("error", err.Error()).Error("Failed to save file")
		return fmt.Errorf("%w: could not save %s: %v", ErrFileWrite, s.relative(a.Path), err)
	}
	s.logger.WithField("path", a.Path).Info("Artifact saved")
	s.ui.Info(fmt.Sprintf("Successfully saved file: %s", s.relative(a.Path)))
	return nil
}

func (s *Session) requireProject() error {
	return analyzer.RequireDir(s.fs.Fs, s.project)
}

func (s *Session) askEntityName(title, placeholder string) (string, error) {
	raw, err := s.ui.Ask(title, placeholder)
	if err != nil {
		return "", err
	}
	name := utils.FormatEntityName(raw)
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntityName, strings.TrimSpace(raw))
	}
	if name != strings.TrimSpace(raw) {
		s.ui.Info(fmt.Sprintf("Using entity name %s.", name))
	}
	return name, nil
}

// namespace derives the C# root namespace from the project directory name.
func (s *Session) namespace() string {
	ns := utils.FormatEntityName(filepath.Base(s.project))
	if ns == "" {
		return defaultNamespace
	}
	return ns
}

func (s *Session) relative(path string) string {
	rel, err := filepath.Rel(s.project, path)
	if err != nil {
		return path
	}
	return rel
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
