package core

import (
	"errors"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/santiagomed/synapse/analyzer"
	"github.com/santiagomed/synapse/llm"
)

var ErrFileWrite = errors.New("file write error")

const (
	SourceExt = ".cs"
	ViewExt   = ".cshtml"
)

// Artifact is generated text waiting for the user's decision. It is
// dropped when the user declines to save it.
type Artifact struct {
	Path    string
	Content string
}

func ModelPath(project, name string) string {
	return filepath.Join(project, analyzer.ModelsDir, name+SourceExt)
}

func ControllerPath(project, name string) string {
	return filepath.Join(project, analyzer.ControllersDir, name+"sController"+SourceExt)
}

func ViewPath(project, name string, kind llm.ViewKind) string {
	return filepath.Join(project, analyzer.ViewsDir, name+"s", string(kind)+ViewExt)
}

// unifiedDiff renders the change from current to generated.
func unifiedDiff(path, current, generated string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(generated),
		FromFile: path + " (current)",
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return diff
}
