package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunSetupTUI starts the interactive configuration wizard
func RunSetupTUI() error {
	model, err := NewSetupModel()
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	// Handle exit messages after TUI closes
	if err != nil {
		return err
	}

	if m, ok := finalModel.(SetupModel); ok {
		if m.cancelled {
			fmt.Println("❌ Setup cancelled.")
		} else if m.completed {
			fmt.Printf("✅ Configuration saved to %s\n", m.savedPath)
		} else if m.err != nil {
			fmt.Printf("❌ Error: %v\n", m.err)
		}
	}

	return nil
}
