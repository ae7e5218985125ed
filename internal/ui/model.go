// Package ui is the bubbletea front end of the tracker. It turns key presses
// into app Messages and renders the App snapshot after every dispatch.
package ui

import (
	"context"

	"github.com/STTM-NSU/portfolio-tracker/internal/app"
	"github.com/STTM-NSU/portfolio-tracker/internal/staging"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptOpen
	promptSave
	promptSaveAs
)

type Model struct {
	ctx         context.Context
	app         *app.App
	picker      *PromptPicker
	defaultName string
	theme       Theme

	// UI state
	width  int
	height int
	cursor int

	// popup fields mirror the active staging form
	formKind *staging.Kind
	inputs   []textinput.Model
	focus    int

	prompt      promptKind
	promptInput textinput.Model
}

// NewModel drives a. picker must be the Picker a was built with.
func NewModel(ctx context.Context, a *app.App, picker *PromptPicker, defaultName string) Model {
	return Model{
		ctx:         ctx,
		app:         a,
		picker:      picker,
		defaultName: defaultName,
		theme:       Default,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) dispatch(msg app.Message) tea.Cmd {
	m.app.Dispatch(m.ctx, msg)
	m.clampCursor()
	return m.syncInputs()
}

// syncInputs rebuilds the popup fields when the active form changes.
func (m *Model) syncInputs() tea.Cmd {
	form, ok := m.app.Staging().Active()
	if !ok {
		m.formKind, m.inputs, m.focus = nil, nil, 0
		return nil
	}
	if m.formKind != nil && *m.formKind == form.Kind() {
		return nil
	}

	kind := form.Kind()
	m.formKind = &kind
	m.inputs = make([]textinput.Model, 0, len(form.Fields()))
	for _, f := range form.Fields() {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.Name
		in.SetValue(f.Value)
		m.inputs = append(m.inputs, in)
	}
	m.focus = 0
	return m.inputs[0].Focus()
}

func (m *Model) focusInput(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *Model) openPrompt(kind promptKind) tea.Cmd {
	m.prompt = kind
	m.promptInput = textinput.New()
	m.promptInput.Prompt = "path: "
	if kind != promptOpen {
		m.promptInput.SetValue(m.defaultName)
		m.promptInput.CursorEnd()
	}
	return m.promptInput.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.promptInput.Blur()
}

func (m *Model) clampCursor() {
	n := len(m.app.Portfolio().Securities)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the id of the security under the cursor.
func (m Model) selected() (uint8, bool) {
	securities := m.app.Portfolio().Securities
	if m.cursor < 0 || m.cursor >= len(securities) {
		return 0, false
	}
	return securities[m.cursor].ID, true
}
