package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"github.com/STTM-NSU/portfolio-tracker/internal/model"
)

var ErrQuantityOverflow = errors.New("quantity overflow")

// UpdatePortfolio is the portfolio layer of the state machine. It mutates p
// according to msg and returns the next screen. A non-nil error always comes
// with an error screen and means p was left untouched.
func UpdatePortfolio(p *model.Portfolio, msg Message, log logger.Logger) (Screen, error) {
	switch m := msg.(type) {
	case NewPortfolio, LoadPortfolio, SavePortfolio, SavePortfolioAs, Back, CancelInput:
		return Overview(false), nil
	case OpenSettings:
		return Settings(), nil
	case Debug:
		log.Debugf("portfolio: %+v", *p)
		return Overview(false), nil

	case OpenSecurityNameInput, OpenEntryInput, UpdateCurrentValue, NewInput:
		return Overview(true), nil

	case AddSecurity:
		id, err := p.AddSecurity(m.Name)
		if err != nil {
			return Error(CodePortfolioFull), fmt.Errorf("%w: can't add security %q", err, m.Name)
		}
		log.Infof("security %d %q added", id, m.Name)
		return Overview(false), nil

	case OpenSecurity:
		p.Open(m.ID)
		return Overview(false), nil

	case AddEntry:
		s, ok := p.Opened()
		if !ok {
			log.Debugf("no open security, entry dropped")
			return Overview(false), nil
		}
		quantity, err := ParseQuantity(m.Amount)
		if err != nil {
			return Error(CodeInvalidNumber), err
		}
		price, err := ParsePrice(m.Price)
		if err != nil {
			return Error(CodeInvalidNumber), err
		}
		if uint64(s.Quantity)+uint64(quantity) > math.MaxUint32 {
			return Error(CodeInvalidNumber), fmt.Errorf("%w: %s holds %d units", ErrQuantityOverflow, s.Name, s.Quantity)
		}
		next := s.Clone()
		next.AddEntry(m.Date, quantity, price)
		next.RecomputeInvestedValue()
		if err := p.CheckUpdate(next); err != nil {
			return Error(CodeInvalidNumber), fmt.Errorf("%w: can't add entry to %s", err, s.Name)
		}
		*s = next
		log.Infof("entry %s %d x %v added to security %d", m.Date, quantity, price, s.ID)
		return Overview(false), nil

	case SetCurrentPrice:
		s, ok := p.Opened()
		if !ok {
			log.Debugf("no open security, price dropped")
			return Overview(false), nil
		}
		price, err := ParsePrice(m.Price)
		if err != nil {
			return Error(CodeInvalidNumber), err
		}
		next := s.Clone()
		next.SetCurrentPrice(price)
		next.RecomputeCurrentValue()
		if err := p.CheckUpdate(next); err != nil {
			return Error(CodeInvalidNumber), fmt.Errorf("%w: can't set price of %s", err, s.Name)
		}
		*s = next
		log.Infof("security %d current price set to %v", s.ID, price)
		return Overview(false), nil

	default:
		return Error(CodeUnhandledMessage), fmt.Errorf("unhandled message %T", msg)
	}
}
