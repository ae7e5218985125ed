package ui

import (
	"path/filepath"
	"strings"

	"github.com/STTM-NSU/portfolio-tracker/internal/app"
)

// PromptPicker is the terminal Picker. The model collects a path in its own
// prompt, hands it over with Provide and then dispatches the load or save
// message; the App reads the path back through PickOpenPath/PickSavePath.
// A pick without a provided path is a cancellation.
type PromptPicker struct {
	pending *string
}

func NewPromptPicker() *PromptPicker {
	return &PromptPicker{}
}

func (p *PromptPicker) Provide(path string) {
	p.pending = &path
}

// Clear drops a provided path that no pick consumed.
func (p *PromptPicker) Clear() {
	p.pending = nil
}

func (p *PromptPicker) take() (string, bool) {
	if p.pending == nil {
		return "", false
	}
	path := strings.TrimSpace(*p.pending)
	p.pending = nil
	return path, path != ""
}

func (p *PromptPicker) PickOpenPath() (string, bool) {
	return p.take()
}

// PickSavePath falls back to defaultName for a blank path and appends the
// first filter extension when the path has none.
func (p *PromptPicker) PickSavePath(defaultName string, filter app.FileFilter) (string, bool) {
	if p.pending == nil {
		return "", false
	}
	path, ok := p.take()
	if !ok {
		path = defaultName
	}
	if path == "" {
		return "", false
	}
	if len(filter.Extensions) > 0 && filepath.Ext(path) == "" {
		path += "." + filter.Extensions[0]
	}
	return path, true
}
