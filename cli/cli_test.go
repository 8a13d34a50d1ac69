package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/santiagomed/synapse/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func sized(m reviewModel) reviewModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(reviewModel)
}

func TestReviewModelDecisions(t *testing.T) {
	tests := []struct {
		key  string
		want decision
	}{
		{"y", accepted},
		{"Y", accepted},
		{"n", declined},
		{"esc", declined},
		{"ctrl+c", aborted},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := sized(newReviewModel(core.Artifact{Path: "Models/Foo.cs", Content: "class Foo {}"}, ""))
			updated, cmd := m.Update(key(tt.key))
			assert.Equal(t, tt.want, updated.(reviewModel).decision)
			assert.True(t, isQuit(t, cmd))
		})
	}
}

func TestReviewModelIgnoresOtherKeys(t *testing.T) {
	m := sized(newReviewModel(core.Artifact{Path: "Models/Foo.cs", Content: "class Foo {}"}, ""))
	updated, _ := m.Update(key("x"))
	assert.Equal(t, undecided, updated.(reviewModel).decision)
}

func TestReviewModelTogglesDiff(t *testing.T) {
	a := core.Artifact{Path: "Models/Foo.cs", Content: "class Foo {}"}
	m := sized(newReviewModel(a, "-old\n+new\n"))
	require.True(t, m.showDiff)
	assert.Contains(t, m.View(), "diff against current file")

	updated, cmd := m.Update(key("d"))
	m = updated.(reviewModel)
	assert.Nil(t, cmd)
	assert.False(t, m.showDiff)
	assert.Contains(t, m.View(), "class Foo {}")

	noDiff := sized(newReviewModel(a, ""))
	updated, _ = noDiff.Update(key("d"))
	assert.False(t, updated.(reviewModel).showDiff)
	assert.NotContains(t, noDiff.footer(), "toggle diff")
}

func TestReviewModelWaitsForSize(t *testing.T) {
	m := newReviewModel(core.Artifact{Path: "Models/Foo.cs", Content: "class Foo {}"}, "")
	assert.Equal(t, "Loading...", m.View())
}

func TestBusyModelQuitsWhenDone(t *testing.T) {
	ran := false
	m := newBusyModel("Working", func() { ran = true })

	msg := m.run()
	assert.True(t, ran)

	updated, cmd := m.Update(msg)
	assert.True(t, isQuit(t, cmd))
	assert.Empty(t, updated.View())
	assert.Contains(t, m.View(), "Working")
}

func TestColorDiffKeepsLines(t *testing.T) {
	diff := "--- a\n+++ b\n@@ -1 +1 @@\n-old\n+new\n same"
	out := colorDiff(diff)
	assert.Equal(t, strings.Count(diff, "\n"), strings.Count(out, "\n"))
	for _, s := range []string{"old", "new", "same", "@@ -1 +1 @@"} {
		assert.Contains(t, out, s)
	}
}
