package model

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSecurityAllocatesSequentialIDs(t *testing.T) {
	p := NewPortfolio()

	for i := 0; i < 10; i++ {
		id, err := p.AddSecurity(fmt.Sprintf("sec-%d", i%3))
		require.NoError(t, err)
		assert.Equal(t, uint8(i), id)
	}

	for i, s := range p.Securities {
		assert.Equal(t, uint8(i), s.ID)
	}
	assert.Equal(t, uint8(9), p.LastSecurityID)
}

func TestAddSecurityResetsCounterOnEmptyPortfolio(t *testing.T) {
	p := &Portfolio{LastSecurityID: 17}

	id, err := p.AddSecurity("Apple")
	require.NoError(t, err)
	assert.Equal(t, uint8(0), id)
	assert.Equal(t, uint8(0), p.LastSecurityID)
}

func TestAddSecurityFull(t *testing.T) {
	p := NewPortfolio()
	for i := 0; i <= math.MaxUint8; i++ {
		_, err := p.AddSecurity("s")
		require.NoError(t, err)
	}

	_, err := p.AddSecurity("overflow")
	assert.ErrorIs(t, err, ErrPortfolioFull)
	assert.Len(t, p.Securities, math.MaxUint8+1)
}

func TestOpenedToleratesStaleID(t *testing.T) {
	p := NewPortfolio()
	_, ok := p.Opened()
	assert.False(t, ok)

	_, err := p.AddSecurity("Apple")
	require.NoError(t, err)

	p.Open(7)
	_, ok = p.Opened()
	assert.False(t, ok)

	p.Open(0)
	s, ok := p.Opened()
	require.True(t, ok)
	assert.Equal(t, "Apple", s.Name)

	s.AddEntry("2024-01-01", 1, 1)
	assert.Len(t, p.Securities[0].Entries, 1, "Opened must alias the stored security")
}

func TestTotals(t *testing.T) {
	p := NewPortfolio()
	for _, name := range []string{"A", "B"} {
		_, err := p.AddSecurity(name)
		require.NoError(t, err)
	}
	a, _ := p.Security(0)
	a.AddEntry("d", 10, 0.1)
	a.RecomputeInvestedValue()
	a.SetCurrentPrice(0.2)
	a.RecomputeCurrentValue()

	b, _ := p.Security(1)
	b.AddEntry("d", 1, 0.2)
	b.RecomputeInvestedValue()

	totals := p.Totals()
	assert.Equal(t, 1.2, totals.Invested)
	assert.Equal(t, 2.0, totals.Current)
}

func TestCheckUpdate(t *testing.T) {
	p := NewPortfolio()
	for _, name := range []string{"Apple", "Gold"} {
		_, err := p.AddSecurity(name)
		require.NoError(t, err)
	}
	p.Securities[0].AddEntry("d", 1, math.MaxFloat64)
	p.Securities[0].RecomputeInvestedValue()

	next := p.Securities[1].Clone()
	next.AddEntry("d", 1, 1)
	next.RecomputeInvestedValue()
	assert.NoError(t, p.CheckUpdate(next), "totals round to MaxFloat64")

	next = p.Securities[1].Clone()
	next.AddEntry("d", 1, math.MaxFloat64)
	next.RecomputeInvestedValue()
	assert.ErrorIs(t, p.CheckUpdate(next), ErrValueOverflow)
	assert.Empty(t, p.Securities[1].Entries, "clone must not share entries")

	next = p.Securities[0].Clone()
	next.AddEntry("d", 2, math.MaxFloat64)
	next.RecomputeInvestedValue()
	assert.ErrorIs(t, p.CheckUpdate(next), ErrValueOverflow)
	assert.Len(t, p.Securities[0].Entries, 1)
}
