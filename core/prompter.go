package core

import "errors"

// ErrAborted is returned by a Prompter when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

// MenuOption is one entry of the main menu.
type MenuOption struct {
	Key   string
	Label string
}

// Prompter is the console a Session talks through. Every method blocks
// until the user has answered.
type Prompter interface {
	// Ask reads one line of free text.
	Ask(title, placeholder string) (string, error)
	// Select presents the options and returns the key of the chosen one.
	Select(title string, options []MenuOption) (string, error)
	// Review shows a generated artifact, and the diff against the file it
	// would replace when there is one, then asks whether to save it.
	Review(a Artifact, diff string) (bool, error)
	// Show displays a block of markdown text under a title.
	Show(title, body string)
	// Busy runs fn while telling the user that work is in progress.
	Busy(title string, fn func())

	Info(msg string)
	Warn(msg string)
	Error(msg string)
}
