package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/boardprep/internal/constants"
)

func newConfirmationForm(fm *ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}

// handleConfirmationMessage opens the confirmation form for a pending action
func (m *Model) handleConfirmationMessage(msg constants.ConfirmationMsg) tea.Cmd {
	m.confirmation = &ConfirmationFormModel{Message: msg.Message}
	m.pendingAction = msg.Action
	m.form = newConfirmationForm(m.confirmation)
	m.previousState = m.activeTab()
	m.state = constants.StateConfirmation
	return m.form.Init()
}

// handleConfirmationState drives the open form and runs the pending action
// once it is confirmed
func (m *Model) handleConfirmationState(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeConfirmation()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if m.confirmation.Confirmed && m.pendingAction != nil {
			cmds = append(cmds, m.pendingAction())
		}
		m.closeConfirmation()
	case huh.StateAborted:
		m.closeConfirmation()
	}
	return tea.Batch(cmds...)
}

func (m *Model) closeConfirmation() {
	m.pendingAction = nil
	m.confirmation = nil
	m.form = nil
	m.state = m.previousState
}
