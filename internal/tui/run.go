package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
