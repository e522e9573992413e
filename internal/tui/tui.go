package tui

import (
	"vigil/internal/debuglog"

	tea "github.com/charmbracelet/bubbletea"
)

// RunSetup shows the selection screen until the user commits or quits.
func RunSetup(opts SetupOptions) (SetupResult, error) {
	applyColorProfilePreference()
	if w := opts.Watcher; w != nil {
		if err := w.Start(); err != nil {
			debuglog.Logf("setup: watcher disabled: %v", err)
			opts.Watcher = nil
		} else {
			defer w.Stop()
		}
	}
	m, err := newSetupModel(opts)
	if err != nil {
		return SetupResult{}, err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus()).Run()
	if err != nil {
		return SetupResult{}, err
	}
	if sm, ok := final.(*setupModel); ok {
		return sm.result, nil
	}
	return m.result, nil
}

// RunPresent presents opts.Selection until the user quits.
func RunPresent(opts PresentOptions) error {
	applyColorProfilePreference()
	m := newPresentModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
