package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// Entry is a single purchase lot. It is never modified after creation.
type Entry struct {
	Date         string  `json:"date"`
	Quantity     uint32  `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// EntryRow is the read-only view of an Entry handed to renderers.
type EntryRow struct {
	Date         string
	Quantity     uint32
	PricePerUnit float64
}

// Security is a named holding with its purchase entries and cached valuation.
//
// Quantity is maintained incrementally by AddEntry. The two value caches are
// only refreshed by RecomputeInvestedValue and RecomputeCurrentValue, callers
// must invoke them after mutating entries or price.
type Security struct {
	ID                        uint8   `json:"id"`
	Name                      string  `json:"name"`
	Quantity                  uint32  `json:"quantity"`
	Entries                   []Entry `json:"entries"`
	CurrentPricePerUnit       float64 `json:"current_price_per_unit"`
	CurrentTotalInvestedValue float64 `json:"current_total_invested_value"`
	CurrentTotalCurrentValue  float64 `json:"current_total_current_value"`
}

func NewSecurity(id uint8, name string, quantity uint32) Security {
	return Security{
		ID:       id,
		Name:     name,
		Quantity: quantity,
		Entries:  []Entry{},
	}
}

func (s *Security) AddEntry(date string, quantity uint32, pricePerUnit float64) {
	s.Entries = append(s.Entries, Entry{
		Date:         date,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
	})
	s.Quantity += quantity
}

func (s *Security) RecomputeInvestedValue() {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(lotValue(e.PricePerUnit, e.Quantity))
	}
	s.CurrentTotalInvestedValue = total.InexactFloat64()
}

func (s *Security) SetCurrentPrice(pricePerUnit float64) {
	s.CurrentPricePerUnit = pricePerUnit
}

func (s *Security) RecomputeCurrentValue() {
	s.CurrentTotalCurrentValue = lotValue(s.CurrentPricePerUnit, s.Quantity).InexactFloat64()
}

func (s *Security) TotalQuantity() uint32 {
	return s.Quantity
}

func (s *Security) CurrentPrice() float64 {
	return s.CurrentPricePerUnit
}

func (s *Security) InvestedValue() float64 {
	return s.CurrentTotalInvestedValue
}

func (s *Security) CurrentValue() float64 {
	return s.CurrentTotalCurrentValue
}

// Gain is the difference between the two cached values.
func (s *Security) Gain() float64 {
	return decimal.NewFromFloat(s.CurrentTotalCurrentValue).
		Sub(decimal.NewFromFloat(s.CurrentTotalInvestedValue)).
		InexactFloat64()
}

func (s *Security) EntryRows() []EntryRow {
	rows := make([]EntryRow, 0, len(s.Entries))
	for _, e := range s.Entries {
		rows = append(rows, EntryRow{
			Date:         e.Date,
			Quantity:     e.Quantity,
			PricePerUnit: e.PricePerUnit,
		})
	}
	return rows
}

// Clone returns a copy of s that shares no entries with it.
func (s *Security) Clone() Security {
	out := *s
	out.Entries = make([]Entry, len(s.Entries))
	copy(out.Entries, s.Entries)
	return out
}

func (s *Security) finite() bool {
	for _, v := range []float64{s.CurrentPricePerUnit, s.CurrentTotalInvestedValue, s.CurrentTotalCurrentValue} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func lotValue(price float64, quantity uint32) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}
