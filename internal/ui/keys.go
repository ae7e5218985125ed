package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	New      key.Binding
	Open     key.Binding
	Save     key.Binding
	SaveAs   key.Binding
	Settings key.Binding
	Debug    key.Binding
	Add      key.Binding
	Price    key.Binding
	Entry    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding

	// popup
	Next    key.Binding
	Prev    key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// ForceQuit works while typing, where q is text.
	ForceQuit key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
	Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	SaveAs:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save as")),
	Settings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Debug:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "debug")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add security")),
	Price:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "update current value")),
	Entry:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "add entry")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open security")),

	Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

func (k keyMap) mainMenuHelp() []key.Binding {
	return []key.Binding{k.New, k.Open, k.Save, k.Settings, k.Debug, k.Quit}
}

func (k keyMap) overviewHelp() []key.Binding {
	return []key.Binding{
		k.Add, k.Up, k.Select, k.Entry, k.Price,
		k.New, k.Open, k.Save, k.SaveAs, k.Settings, k.Debug, k.Quit,
	}
}

func (k keyMap) popupHelp() []key.Binding {
	return []key.Binding{k.Next, k.Confirm, k.Cancel}
}

func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
