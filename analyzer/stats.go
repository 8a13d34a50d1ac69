package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// NoExtension is the tally key for files without an extension.
const NoExtension = "(none)"

// Stats is the whole-directory statistics report.
type Stats struct {
	TotalDirectories int            `json:"total_directories"`
	TotalFiles       int            `json:"total_files"`
	FileTypeCounts   map[string]int `json:"file_type_counts"`

	// Unreadable directories below the root are skipped and counted here.
	Skipped int `json:"skipped"`

	// extensions in the order they were first seen during the walk
	order []string
}

// ExtensionCount is one row of the extension tally.
type ExtensionCount struct {
	Extension string
	Count     int
}

// CollectStats walks root recursively. The root itself is not counted as a
// directory. Entries below the root that cannot be read are skipped.
func CollectStats(afs afero.Fs, root string) (*Stats, error) {
	if err := RequireDir(afs, root); err != nil {
		return nil, err
	}

	stats := &Stats{FileTypeCounts: map[string]int{}}
	root = filepath.Clean(root)
	err := afero.Walk(afs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if filepath.Clean(path) == root {
				return err
			}
			stats.Skipped++
			return nil
		}
		if filepath.Clean(path) == root {
			return nil
		}
		if info.IsDir() {
			stats.TotalDirectories++
			return nil
		}
		stats.add(info.Name())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	return stats, nil
}

func (s *Stats) add(name string) {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		ext = NoExtension
	}
	if _, seen := s.FileTypeCounts[ext]; !seen {
		s.order = append(s.order, ext)
	}
	s.FileTypeCounts[ext]++
	s.TotalFiles++
}

// Extensions returns the tally sorted by descending count. Ties keep the
// order in which the extensions were first seen.
func (s *Stats) Extensions() []ExtensionCount {
	counts := make([]ExtensionCount, 0, len(s.order))
	for _, ext := range s.order {
		counts = append(counts, ExtensionCount{Extension: ext, Count: s.FileTypeCounts[ext]})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Text renders the report in the form used by the project summary prompt.
func (s *Stats) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total directories: %d\n", s.TotalDirectories)
	fmt.Fprintf(&b, "Total files: %d\n", s.TotalFiles)
	b.WriteString("File types:\n")
	exts := s.Extensions()
	if len(exts) == 0 {
		b.WriteString("  (no files)\n")
	}
	for _, e := range exts {
		fmt.Fprintf(&b, "  %s: %d\n", e.Extension, e.Count)
	}
	if s.Skipped > 0 {
		fmt.Fprintf(&b, "Unreadable entries skipped: %d\n", s.Skipped)
	}
	return b.String()
}
