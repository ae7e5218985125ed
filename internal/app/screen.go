package app

import "fmt"

type ScreenKind int

const (
	MainMenuScreen ScreenKind = iota
	OverviewScreen
	SettingsScreen
	ErrorScreen
)

// ErrorCode identifies why the state machine entered the error screen.
type ErrorCode uint8

const (
	CodeUnhandledMessage ErrorCode = 1
	CodeWizardSequence   ErrorCode = 2
	CodeNoActiveInput    ErrorCode = 3
	CodeInvalidNumber    ErrorCode = 4
	CodePortfolioFull    ErrorCode = 5
)

func (c ErrorCode) Description() string {
	switch c {
	case CodeUnhandledMessage:
		return "unhandled message"
	case CodeWizardSequence:
		return "no matching input is open"
	case CodeNoActiveInput:
		return "no input is active"
	case CodeInvalidNumber:
		return "invalid number"
	case CodePortfolioFull:
		return "portfolio is full"
	default:
		return "unknown error"
	}
}

// Screen is a tagged variant. PopupActive is meaningful for OverviewScreen
// only, ErrorCode for ErrorScreen only.
type Screen struct {
	Kind        ScreenKind
	PopupActive bool
	ErrorCode   ErrorCode
}

func MainMenu() Screen {
	return Screen{Kind: MainMenuScreen}
}

func Overview(popupActive bool) Screen {
	return Screen{Kind: OverviewScreen, PopupActive: popupActive}
}

func Settings() Screen {
	return Screen{Kind: SettingsScreen}
}

func Error(code ErrorCode) Screen {
	return Screen{Kind: ErrorScreen, ErrorCode: code}
}

func (s Screen) String() string {
	switch s.Kind {
	case MainMenuScreen:
		return "MainMenu"
	case OverviewScreen:
		return fmt.Sprintf("Overview(%t)", s.PopupActive)
	case SettingsScreen:
		return "Settings"
	case ErrorScreen:
		return fmt.Sprintf("Error(%d)", s.ErrorCode)
	default:
		return fmt.Sprintf("Screen(%d)", int(s.Kind))
	}
}
