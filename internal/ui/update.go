package ui

import (
	"github.com/STTM-NSU/portfolio-tracker/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}
		switch {
		case m.prompt != promptNone:
			return m.updatePrompt(msg)
		case m.formKind != nil:
			return m.updatePopup(msg)
		}
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		return m.updateCommand(msg)
	}

	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, keys.Confirm):
		kind := m.prompt
		m.picker.Provide(m.promptInput.Value())
		m.closePrompt()

		var appMsg app.Message = app.SavePortfolioAs{}
		switch kind {
		case promptOpen:
			appMsg = app.LoadPortfolio{}
		case promptSave:
			appMsg = app.SavePortfolio{}
		}
		cmd := m.dispatch(appMsg)
		m.picker.Clear()
		return m, cmd
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m Model) updatePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		cmd := m.dispatch(app.CancelInput{})
		return m, cmd
	case key.Matches(msg, keys.Confirm):
		cmd := m.dispatch(app.Confirm{})
		return m, cmd
	case key.Matches(msg, keys.Next):
		cmd := m.focusInput(m.focus + 1)
		return m, cmd
	case key.Matches(msg, keys.Prev):
		cmd := m.focusInput(m.focus - 1)
		return m, cmd
	}

	form, ok := m.app.Staging().Active()
	if !ok {
		cmd := m.syncInputs()
		return m, cmd
	}

	in := m.inputs[m.focus]
	before := in.Value()
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	m.inputs[m.focus] = in
	if in.Value() == before {
		return m, cmd
	}

	field := form.Fields()[m.focus].Name
	dispatched := m.dispatch(app.NewInput{Field: field, Value: in.Value()})
	return m, tea.Batch(cmd, dispatched)
}

func (m Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.app.Portfolio().Securities)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, keys.Open):
		cmd := m.openPrompt(promptOpen)
		return m, cmd
	case key.Matches(msg, keys.SaveAs):
		cmd := m.openPrompt(promptSaveAs)
		return m, cmd
	case key.Matches(msg, keys.Save):
		if m.app.Location() == "" {
			cmd := m.openPrompt(promptSave)
			return m, cmd
		}
		cmd := m.dispatch(app.SavePortfolio{})
		return m, cmd
	}

	if msg, ok := m.commandMessage(msg); ok {
		cmd := m.dispatch(msg)
		return m, cmd
	}
	return m, nil
}

// commandMessage maps a key outside the popup and the path prompt to the
// App message it stands for.
func (m Model) commandMessage(msg tea.KeyMsg) (app.Message, bool) {
	switch {
	case key.Matches(msg, keys.New):
		return app.NewPortfolio{}, true
	case key.Matches(msg, keys.Settings):
		return app.OpenSettings{}, true
	case key.Matches(msg, keys.Debug):
		return app.Debug{}, true
	case key.Matches(msg, keys.Add):
		return app.OpenSecurityNameInput{}, true
	case key.Matches(msg, keys.Price):
		return app.UpdateCurrentValue{}, true
	case key.Matches(msg, keys.Entry):
		return app.OpenEntryInput{}, true
	case key.Matches(msg, keys.Back):
		return app.Back{}, true
	case key.Matches(msg, keys.Select):
		if id, ok := m.selected(); ok {
			return app.OpenSecurity{ID: id}, true
		}
	}
	return nil, false
}
