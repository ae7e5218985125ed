package app

// Message is a discrete user action fed into the state machine.
type Message interface {
	isMessage()
}

type (
	NewPortfolio    struct{}
	LoadPortfolio   struct{}
	SavePortfolio   struct{}
	SavePortfolioAs struct{}
	OpenSettings    struct{}
	Debug           struct{}
	Back            struct{}

	OpenSecurityNameInput struct{}
	// AddSecurity submits the security form. At the top level the payload is
	// replaced with the staged name.
	AddSecurity struct {
		Name string
	}
	OpenSecurity struct {
		ID uint8
	}

	OpenEntryInput struct{}
	// AddEntry submits the entry form. At the top level the payload is
	// replaced with the staged fields.
	AddEntry struct {
		Date   string
		Amount string
		Price  string
	}

	UpdateCurrentValue struct{}
	SetCurrentPrice    struct {
		Price string
	}

	NewInput struct {
		Field string
		Value string
	}
	// Confirm submits whichever form is the active input.
	Confirm     struct{}
	CancelInput struct{}
)

func (NewPortfolio) isMessage()          {}
func (LoadPortfolio) isMessage()         {}
func (SavePortfolio) isMessage()         {}
func (SavePortfolioAs) isMessage()       {}
func (OpenSettings) isMessage()          {}
func (Debug) isMessage()                 {}
func (Back) isMessage()                  {}
func (OpenSecurityNameInput) isMessage() {}
func (AddSecurity) isMessage()           {}
func (OpenSecurity) isMessage()          {}
func (OpenEntryInput) isMessage()        {}
func (AddEntry) isMessage()              {}
func (UpdateCurrentValue) isMessage()    {}
func (SetCurrentPrice) isMessage()       {}
func (NewInput) isMessage()              {}
func (Confirm) isMessage()               {}
func (CancelInput) isMessage()           {}
