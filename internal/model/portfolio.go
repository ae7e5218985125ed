package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrPortfolioFull = errors.New("portfolio has no free security id")
	ErrValueOverflow = errors.New("value does not fit a float64")
)

// Portfolio holds all securities in creation order together with the
// currently opened one and the id allocator.
type Portfolio struct {
	Securities     []Security `json:"securities"`
	OpenSecurity   *uint8     `json:"open_security"`
	LastSecurityID uint8      `json:"last_security_id"`
}

type Totals struct {
	Invested float64
	Current  float64
}

func NewPortfolio() *Portfolio {
	return &Portfolio{
		Securities: []Security{},
	}
}

// AddSecurity allocates the next id and appends an empty security.
// The counter is forced to 0 for the first security of an empty portfolio.
func (p *Portfolio) AddSecurity(name string) (uint8, error) {
	if len(p.Securities) > math.MaxUint8 {
		return 0, ErrPortfolioFull
	}

	if len(p.Securities) == 0 {
		p.LastSecurityID = 0
	} else {
		if p.LastSecurityID == math.MaxUint8 {
			return 0, ErrPortfolioFull
		}
		p.LastSecurityID++
	}

	p.Securities = append(p.Securities, NewSecurity(p.LastSecurityID, name, 0))
	return p.LastSecurityID, nil
}

// Security finds a security by id. The returned pointer aliases the slice
// element and stays valid until the next AddSecurity.
func (p *Portfolio) Security(id uint8) (*Security, bool) {
	for i := range p.Securities {
		if p.Securities[i].ID == id {
			return &p.Securities[i], true
		}
	}
	return nil, false
}

func (p *Portfolio) Open(id uint8) {
	p.OpenSecurity = &id
}

// Opened resolves the open selection. A stale id reads as nothing open.
func (p *Portfolio) Opened() (*Security, bool) {
	if p.OpenSecurity == nil {
		return nil, false
	}
	return p.Security(*p.OpenSecurity)
}

func (p *Portfolio) Totals() Totals {
	invested, current := decimal.Zero, decimal.Zero
	for _, s := range p.Securities {
		invested = invested.Add(decimal.NewFromFloat(s.CurrentTotalInvestedValue))
		current = current.Add(decimal.NewFromFloat(s.CurrentTotalCurrentValue))
	}
	return Totals{
		Invested: invested.InexactFloat64(),
		Current:  current.InexactFloat64(),
	}
}

// CheckUpdate reports ErrValueOverflow when replacing the security with
// next.ID by next would leave a cached value or a portfolio total infinite.
// p is not modified.
func (p *Portfolio) CheckUpdate(next Security) error {
	if !next.finite() {
		return fmt.Errorf("%w: security %d", ErrValueOverflow, next.ID)
	}

	invested, current := decimal.Zero, decimal.Zero
	for _, s := range p.Securities {
		if s.ID == next.ID {
			s = next
		}
		invested = invested.Add(decimal.NewFromFloat(s.CurrentTotalInvestedValue))
		current = current.Add(decimal.NewFromFloat(s.CurrentTotalCurrentValue))
	}
	for _, total := range []decimal.Decimal{invested, current} {
		if math.IsInf(total.InexactFloat64(), 0) {
			return fmt.Errorf("%w: portfolio total", ErrValueOverflow)
		}
	}
	return nil
}
