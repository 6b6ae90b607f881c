package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrAborted is returned when the user quits a prompt.
var ErrAborted = errors.New("prompt aborted")

// IsTerminal reports whether both stdin and stderr are terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// Prompter asks yes/no questions on the terminal. Prompts are drawn on
// stderr so stdout stays clean for dry-run diffs.
type Prompter struct {
	interactive bool
}

// NewPrompter creates a Prompter that only asks when a terminal is attached.
func NewPrompter() *Prompter {
	return &Prompter{interactive: IsTerminal()}
}

// Interactive reports whether a terminal is attached.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Confirm asks question and returns the answer. def is preselected.
func (p *Prompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	answer := def

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	).
		WithTheme(Theme()).
		WithKeyMap(keyMap()).
		WithShowHelp(false).
		WithProgramOptions(tea.WithOutput(os.Stderr))

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrAborted
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return answer, nil
}

// keyMap adds y/n shortcuts and lets esc quit.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	)
	km.Confirm.Accept = key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	)
	km.Confirm.Reject = key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	)
	return km
}

// Static answers every question the same way, for --yes.
type Static struct {
	Answer bool
}

// Interactive always reports true so that questions are asked.
func (s Static) Interactive() bool {
	return true
}

// Confirm returns the fixed answer.
func (s Static) Confirm(context.Context, string, bool) (bool, error) {
	return s.Answer, nil
}
