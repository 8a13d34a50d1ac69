// Package analyzer inspects a web project directory by file name only. It
// never opens or parses source files.
package analyzer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

var ErrNotADirectory = errors.New("the provided path is not a valid directory")

const (
	ModelsDir      = "Models"
	ControllersDir = "Controllers"
	ViewsDir       = "Views"

	ModelSuffix      = ".cs"
	ControllerSuffix = "Controller.cs"
)

// Classification groups the models and controllers found in a project.
// Controller names have their "Controller.cs" suffix and one trailing plural
// "s" stripped, so "ProductsController.cs" is listed as "Product" and pairs
// with "Product.cs". Irregular plurals are not handled.
type Classification struct {
	Models      []string `json:"models"`
	Controllers []string `json:"controllers"`
}

// Classify lists root/Models and root/Controllers. Missing subdirectories
// produce empty lists; a root that is not a directory is an error.
func Classify(afs afero.Fs, root string) (*Classification, error) {
	if err := RequireDir(afs, root); err != nil {
		return nil, err
	}

	models, err := namesWithSuffix(afs, filepath.Join(root, ModelsDir), ModelSuffix)
	if err != nil {
		return nil, err
	}
	controllers, err := namesWithSuffix(afs, filepath.Join(root, ControllersDir), ControllerSuffix)
	if err != nil {
		return nil, err
	}
	for i, name := range controllers {
		controllers[i] = singular(name)
	}
	sort.Strings(controllers)

	return &Classification{Models: models, Controllers: controllers}, nil
}

// HasController reports whether model has a paired controller.
func (c *Classification) HasController(model string) bool {
	for _, name := range c.Controllers {
		if name == model {
			return true
		}
	}
	return false
}

// MissingControllers returns the models that have no paired controller.
func (c *Classification) MissingControllers() []string {
	missing := []string{}
	for _, m := range c.Models {
		if !c.HasController(m) {
			missing = append(missing, m)
		}
	}
	return missing
}

// Text renders the classification for display and for prompts.
func (c *Classification) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Models (%d): %s\n", len(c.Models), joinOrNone(c.Models))
	fmt.Fprintf(&b, "Controllers (%d): %s\n", len(c.Controllers), joinOrNone(c.Controllers))
	if missing := c.MissingControllers(); len(missing) > 0 {
		fmt.Fprintf(&b, "Models without a controller: %s\n", strings.Join(missing, ", "))
	}
	return b.String()
}

func namesWithSuffix(afs afero.Fs, dir, suffix string) ([]string, error) {
	names := []string{}
	if ok, _ := afero.IsDir(afs, dir); !ok {
		return names, nil
	}

	entries, err := afero.ReadDir(afs, dir)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), suffix))
	}
	sort.Strings(names)
	return names, nil
}

func singular(name string) string {
	if len(name) > 1 && strings.HasSuffix(name, "s") {
		return name[:len(name)-1]
	}
	return name
}

// RequireDir returns an error wrapping ErrNotADirectory unless root is an
// existing directory. An empty root never names the working directory.
func RequireDir(afs afero.Fs, root string) error {
	if strings.TrimSpace(root) == "" {
		return fmt.Errorf("empty path: %w", ErrNotADirectory)
	}
	info, err := afs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", root, ErrNotADirectory)
		}
		return fmt.Errorf("%s: %w: %v", root, ErrNotADirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrNotADirectory)
	}
	return nil
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
