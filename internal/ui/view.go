package ui

import (
	"fmt"
	"strings"

	"github.com/STTM-NSU/portfolio-tracker/internal/app"
	"github.com/STTM-NSU/portfolio-tracker/internal/staging"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	t := m.theme
	screen := m.app.Screen()

	var body string
	switch screen.Kind {
	case app.MainMenuScreen:
		body = m.viewMainMenu()
	case app.OverviewScreen:
		body = m.viewOverview()
	case app.SettingsScreen:
		body = m.viewSettings()
	case app.ErrorScreen:
		body = m.viewError(screen.ErrorCode) + "\n\n" + m.viewOverview()
	}

	parts := []string{body}
	switch {
	case m.prompt != promptNone:
		parts = append(parts, m.viewPrompt())
	case m.formKind != nil:
		parts = append(parts, m.viewPopup())
	}
	if notice := m.app.Notice(); notice != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Warning).Render(notice))
	}
	parts = append(parts, m.viewHelp())

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(parts, "\n\n"))
}

func (m Model) viewMainMenu() string {
	t := m.theme
	return lipgloss.JoinVertical(lipgloss.Left,
		t.title().Render("Portfolio Tracker"),
		"",
		t.muted().Render("Start a new portfolio or open a saved one."),
	)
}

func (m Model) viewOverview() string {
	t := m.theme
	p := m.app.Portfolio()

	location := m.app.Location()
	if location == "" {
		location = "unsaved"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		t.title().Render("Portfolio"),
		"  ",
		t.muted().Render(location),
	)

	if len(p.Securities) == 0 {
		return header + "\n\n" + t.muted().Render("No securities yet.")
	}

	sections := []string{header, SecuritiesTable(p, m.cursor, t)}
	if s, ok := p.Opened(); ok {
		title := t.title().Render(s.Name)
		if len(s.Entries) == 0 {
			sections = append(sections, title+"\n"+t.muted().Render("No entries yet."))
		} else {
			sections = append(sections, title+"\n"+EntriesTable(s, t))
		}
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) viewSettings() string {
	t := m.theme
	location := m.app.Location()
	if location == "" {
		location = "none"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		t.title().Render("Settings"),
		"",
		fmt.Sprintf("Current location:  %s", location),
		fmt.Sprintf("Default file name: %s", m.defaultName),
	)
}

func (m Model) viewError(code app.ErrorCode) string {
	t := m.theme
	return lipgloss.NewStyle().Bold(true).Foreground(t.Error).
		Render(fmt.Sprintf("Error %d: %s", code, code.Description()))
}

func (m Model) viewPopup() string {
	t := m.theme
	form, ok := m.app.Staging().Active()
	if !ok {
		return ""
	}

	fields := form.Fields()
	lines := []string{t.title().Render(popupTitle(form.Kind()))}
	for i, in := range m.inputs {
		label := fields[i].Name
		if i == m.focus {
			label = lipgloss.NewStyle().Foreground(t.Accent).Render(label)
		}
		lines = append(lines, label, in.View())
	}
	lines = append(lines, t.muted().Render(form.State().String()))

	return t.popup().Render(strings.Join(lines, "\n"))
}

func popupTitle(kind staging.Kind) string {
	switch kind {
	case staging.SecurityForm:
		return "Add Security"
	case staging.EntryForm:
		return "Add Entry"
	case staging.PriceForm:
		return "Update Current Value"
	default:
		return kind.String()
	}
}

func (m Model) viewPrompt() string {
	t := m.theme
	title := "Open portfolio"
	if m.prompt != promptOpen {
		title = "Save portfolio"
	}
	return t.popup().Render(t.title().Render(title) + "\n" + m.promptInput.View())
}

func (m Model) viewHelp() string {
	var bindings []key.Binding
	switch {
	case m.prompt != promptNone:
		bindings = keys.promptHelp()
	case m.formKind != nil:
		bindings = keys.popupHelp()
	case m.app.Screen().Kind == app.MainMenuScreen:
		bindings = keys.mainMenuHelp()
	default:
		bindings = keys.overviewHelp()
	}

	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, h.Key+" "+h.Desc)
	}
	return m.theme.muted().Render(strings.Join(items, " • "))
}
