// Package app is the application state machine of the tracker. It owns the
// portfolio, the input staging and the current screen, and turns Messages
// into portfolio mutations and screen transitions.
package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"github.com/STTM-NSU/portfolio-tracker/internal/model"
	"github.com/STTM-NSU/portfolio-tracker/internal/staging"
)

type FileFilter struct {
	Name       string
	Extensions []string
}

var JSONFilter = FileFilter{Name: "JSON", Extensions: []string{"json"}}

// Picker chooses where a portfolio is read from or written to.
type Picker interface {
	PickOpenPath() (string, bool)
	PickSavePath(defaultName string, filter FileFilter) (string, bool)
}

// Store reads and writes whole portfolios at a location chosen by the Picker.
type Store interface {
	Load(ctx context.Context, location string) (*model.Portfolio, error)
	Save(ctx context.Context, location string, p *model.Portfolio) error
}

type Options struct {
	DefaultFileName   string
	Filter            FileFilter
	ClearInputsOnOpen bool
	IOTimeout         time.Duration
}

const (
	_defaultFileName = "portfolio.json"
	_defaultTimeout  = 10 * time.Second
)

// App is not safe for concurrent use. Every message must be fully dispatched
// before the next one.
type App struct {
	logger logger.Logger
	store  Store
	picker Picker
	opts   Options

	screen    Screen
	portfolio *model.Portfolio
	staging   *staging.Staging
	location  string
	notice    string
}

func New(store Store, picker Picker, opts Options, logger logger.Logger) *App {
	opts.DefaultFileName = cmp.Or(opts.DefaultFileName, _defaultFileName)
	opts.IOTimeout = cmp.Or(opts.IOTimeout, _defaultTimeout)
	if opts.Filter.Name == "" {
		opts.Filter = JSONFilter
	}

	return &App{
		logger:    logger,
		store:     store,
		picker:    picker,
		opts:      opts,
		screen:    MainMenu(),
		portfolio: model.NewPortfolio(),
		staging:   staging.New(opts.ClearInputsOnOpen),
	}
}

func (a *App) Screen() Screen              { return a.screen }
func (a *App) Portfolio() *model.Portfolio { return a.portfolio }
func (a *App) Staging() *staging.Staging   { return a.staging }
func (a *App) Location() string            { return a.location }
func (a *App) Notice() string              { return a.notice }

// Dispatch processes msg to completion and returns the new screen.
func (a *App) Dispatch(ctx context.Context, msg Message) Screen {
	a.logger.Debugf("message %T %+v on %s", msg, msg, a.screen)
	a.notice = ""

	var next Screen
	switch a.screen.Kind {
	case MainMenuScreen:
		next = a.dispatchMainMenu(ctx, msg)
	case OverviewScreen, SettingsScreen, ErrorScreen:
		next = a.dispatchOverview(ctx, msg)
	default:
		next = Error(CodeUnhandledMessage)
	}

	if next != a.screen {
		a.logger.Debugf("screen %s -> %s", a.screen, next)
	}
	a.screen = next
	return next
}

func (a *App) dispatchMainMenu(ctx context.Context, msg Message) Screen {
	switch msg.(type) {
	case NewPortfolio:
		a.reset()
		return Overview(false)
	case LoadPortfolio:
		if !a.load(ctx) {
			return a.screen
		}
		return Overview(false)
	case SavePortfolio:
		if !a.save(ctx, false) {
			return a.screen
		}
		return Overview(false)
	case OpenSettings:
		return Settings()
	case Debug:
		a.logger.Debugf("portfolio: %+v", *a.portfolio)
		return Overview(false)
	default:
		a.fail(fmt.Errorf("unhandled message %T on main menu", msg))
		return Error(CodeUnhandledMessage)
	}
}

func (a *App) dispatchOverview(ctx context.Context, msg Message) Screen {
	switch m := msg.(type) {
	case NewPortfolio:
		a.reset()
	case LoadPortfolio:
		if !a.load(ctx) {
			return a.screen
		}
	case SavePortfolio:
		if !a.save(ctx, false) {
			return a.screen
		}
	case SavePortfolioAs:
		if !a.save(ctx, true) {
			return a.screen
		}

	case OpenSecurityNameInput:
		a.staging.Open(staging.SecurityForm)
	case OpenEntryInput:
		a.staging.Open(staging.EntryForm)
	case UpdateCurrentValue:
		a.staging.Open(staging.PriceForm)
	case CancelInput:
		a.staging.Cancel()

	case NewInput:
		if err := a.staging.Set(m.Field, m.Value); err != nil {
			if errors.Is(err, staging.ErrNoActiveInput) {
				a.fail(err)
				return Error(CodeNoActiveInput)
			}
			a.logger.Debugf("%s: input dropped", err)
		}

	case Confirm:
		active, ok := a.staging.Active()
		if !ok {
			a.fail(fmt.Errorf("%w: nothing to confirm", staging.ErrNoActiveInput))
			return Error(CodeWizardSequence)
		}
		return a.submit(active.Kind())
	case AddSecurity:
		return a.submit(staging.SecurityForm)
	case AddEntry:
		return a.submit(staging.EntryForm)
	case SetCurrentPrice:
		return a.submit(staging.PriceForm)
	}

	return a.forward(msg)
}

// submit reads the staged form of kind, forwards the populated message to the
// portfolio layer and resolves the form wizard with the outcome.
func (a *App) submit(kind staging.Kind) Screen {
	f, err := a.staging.Submit(kind)
	if err != nil {
		a.fail(err)
		return Error(CodeWizardSequence)
	}

	var msg Message
	switch kind {
	case staging.SecurityForm:
		name, ok := f.Value(staging.FieldSecurityName)
		if !ok {
			a.staging.Reject()
			a.fail(fmt.Errorf("%w: %q", staging.ErrUnknownField, staging.FieldSecurityName))
			return Error(CodeWizardSequence)
		}
		msg = AddSecurity{Name: name}
	case staging.EntryForm:
		msg = AddEntry{
			Date:   f.ValueOrEmpty(staging.FieldDate),
			Amount: f.ValueOrEmpty(staging.FieldAmount),
			Price:  f.ValueOrEmpty(staging.FieldPricePerUnit),
		}
	case staging.PriceForm:
		msg = SetCurrentPrice{Price: f.ValueOrEmpty(staging.FieldCurrentPrice)}
	default:
		a.staging.Reject()
		a.fail(fmt.Errorf("unknown form %s", kind))
		return Error(CodeWizardSequence)
	}

	screen, err := UpdatePortfolio(a.portfolio, msg, a.logger)
	if err != nil {
		a.staging.Reject()
		a.fail(err)
		return screen
	}
	a.staging.Apply()
	return screen
}

func (a *App) forward(msg Message) Screen {
	screen, err := UpdatePortfolio(a.portfolio, msg, a.logger)
	if err != nil {
		a.fail(err)
	}
	return screen
}

func (a *App) reset() {
	a.portfolio = model.NewPortfolio()
	a.location = ""
	a.staging.Cancel()
}

func (a *App) load(ctx context.Context) bool {
	location, ok := a.picker.PickOpenPath()
	if !ok {
		a.logger.Infof("load cancelled")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.IOTimeout)
	defer cancel()

	p, err := a.store.Load(ctx, location)
	if err != nil {
		a.logger.Errorf("%s: can't load portfolio from %s", err, location)
		a.notice = fmt.Sprintf("Can't load %s: %s", location, err)
		return false
	}

	a.portfolio = p
	a.location = location
	a.staging.Cancel()
	a.notice = "Loaded " + location
	a.logger.Infof("portfolio loaded from %s, %d securities", location, len(p.Securities))
	return true
}

func (a *App) save(ctx context.Context, pickLocation bool) bool {
	location := a.location
	if pickLocation || location == "" {
		picked, ok := a.picker.PickSavePath(a.opts.DefaultFileName, a.opts.Filter)
		if !ok {
			a.logger.Infof("save cancelled")
			return false
		}
		location = picked
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.IOTimeout)
	defer cancel()

	if err := a.store.Save(ctx, location, a.portfolio); err != nil {
		a.logger.Errorf("%s: can't save portfolio to %s", err, location)
		a.notice = fmt.Sprintf("Can't save %s: %s", location, err)
		return false
	}

	a.location = location
	a.notice = "Saved " + location
	a.logger.Infof("portfolio saved to %s", location)
	return true
}

func (a *App) fail(err error) {
	a.logger.Warnf("%s", err)
	a.notice = err.Error()
}
