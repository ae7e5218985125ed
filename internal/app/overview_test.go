package app

import (
	"fmt"
	"math"
	"testing"

	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"github.com/STTM-NSU/portfolio-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unknownMessage struct{}

func (unknownMessage) isMessage() {}

func TestUpdatePortfolioTransitions(t *testing.T) {
	tests := []struct {
		msg  Message
		want Screen
	}{
		{msg: OpenSecurityNameInput{}, want: Overview(true)},
		{msg: OpenEntryInput{}, want: Overview(true)},
		{msg: UpdateCurrentValue{}, want: Overview(true)},
		{msg: NewInput{Field: "Date", Value: "x"}, want: Overview(true)},
		{msg: OpenSecurity{ID: 9}, want: Overview(false)},
		{msg: NewPortfolio{}, want: Overview(false)},
		{msg: LoadPortfolio{}, want: Overview(false)},
		{msg: SavePortfolio{}, want: Overview(false)},
		{msg: SavePortfolioAs{}, want: Overview(false)},
		{msg: Debug{}, want: Overview(false)},
		{msg: OpenSettings{}, want: Settings()},
		{msg: unknownMessage{}, want: Error(CodeUnhandledMessage)},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.msg), func(t *testing.T) {
			p := model.NewPortfolio()
			got, _ := UpdatePortfolio(p, tt.msg, logger.NewNopLogger())
			assert.Equal(t, tt.want, got)
			assert.Empty(t, p.Securities)
		})
	}
}

func TestUpdatePortfolioAddSecurityIDs(t *testing.T) {
	p := model.NewPortfolio()
	log := logger.NewNopLogger()

	for i, name := range []string{"Apple", "", "Apple", "Nvidia"} {
		s, err := UpdatePortfolio(p, AddSecurity{Name: name}, log)
		require.NoError(t, err)
		assert.Equal(t, Overview(false), s)
		assert.Equal(t, uint8(i), p.Securities[i].ID)
		assert.Zero(t, p.Securities[i].TotalQuantity())
	}
}

func TestUpdatePortfolioFull(t *testing.T) {
	p := model.NewPortfolio()
	log := logger.NewNopLogger()
	for i := 0; i <= math.MaxUint8; i++ {
		_, err := UpdatePortfolio(p, AddSecurity{Name: "s"}, log)
		require.NoError(t, err)
	}

	s, err := UpdatePortfolio(p, AddSecurity{Name: "one too many"}, log)
	assert.Equal(t, Error(CodePortfolioFull), s)
	assert.ErrorIs(t, err, model.ErrPortfolioFull)
}

func TestUpdatePortfolioOpenSecurityDoesNotValidate(t *testing.T) {
	p := model.NewPortfolio()
	log := logger.NewNopLogger()

	_, err := UpdatePortfolio(p, OpenSecurity{ID: 42}, log)
	require.NoError(t, err)
	require.NotNil(t, p.OpenSecurity)
	assert.Equal(t, uint8(42), *p.OpenSecurity)

	s, err := UpdatePortfolio(p, AddEntry{Date: "d", Amount: "1", Price: "1"}, log)
	require.NoError(t, err)
	assert.Equal(t, Overview(false), s)
}

func TestUpdatePortfolioAddEntryParsing(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		price     string
		want      Screen
		wantValue float64
	}{
		{name: "comma", amount: "10", price: "5,50", want: Overview(false), wantValue: 55},
		{name: "period", amount: " 3 ", price: " 2.25 ", want: Overview(false), wantValue: 6.75},
		{name: "bad amount", amount: "abc", price: "1", want: Error(CodeInvalidNumber)},
		{name: "negative amount", amount: "-1", price: "1", want: Error(CodeInvalidNumber)},
		{name: "fractional amount", amount: "1.5", price: "1", want: Error(CodeInvalidNumber)},
		{name: "bad price", amount: "1", price: "1,2,3", want: Error(CodeInvalidNumber)},
		{name: "empty price", amount: "1", price: "", want: Error(CodeInvalidNumber)},
		{name: "negative price", amount: "1", price: "-2", want: Error(CodeInvalidNumber)},
		{name: "infinite price", amount: "1", price: "1e400", want: Error(CodeInvalidNumber)},
		{name: "overflowing lot", amount: "10", price: "1e308", want: Error(CodeInvalidNumber)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.NewPortfolio()
			log := logger.NewNopLogger()
			_, err := UpdatePortfolio(p, AddSecurity{Name: "Apple"}, log)
			require.NoError(t, err)
			_, err = UpdatePortfolio(p, OpenSecurity{ID: 0}, log)
			require.NoError(t, err)

			got, err := UpdatePortfolio(p, AddEntry{Date: "2024-01-01", Amount: tt.amount, Price: tt.price}, log)
			assert.Equal(t, tt.want, got)

			sec := p.Securities[0]
			if tt.want.Kind == ErrorScreen {
				assert.Error(t, err)
				assert.Empty(t, sec.Entries)
				assert.Zero(t, sec.TotalQuantity())
				assert.Zero(t, sec.InvestedValue())
				return
			}
			require.NoError(t, err)
			require.Len(t, sec.Entries, 1)
			assert.Equal(t, tt.wantValue, sec.InvestedValue())
		})
	}
}

func TestUpdatePortfolioQuantityOverflow(t *testing.T) {
	p := model.NewPortfolio()
	log := logger.NewNopLogger()
	_, err := UpdatePortfolio(p, AddSecurity{Name: "Apple"}, log)
	require.NoError(t, err)
	p.Open(0)

	_, err = UpdatePortfolio(p, AddEntry{Amount: fmt.Sprint(uint32(math.MaxUint32)), Price: "1"}, log)
	require.NoError(t, err)

	s, err := UpdatePortfolio(p, AddEntry{Amount: "1", Price: "1"}, log)
	assert.Equal(t, Error(CodeInvalidNumber), s)
	assert.ErrorIs(t, err, ErrQuantityOverflow)
	assert.Len(t, p.Securities[0].Entries, 1)
}

func TestUpdatePortfolioOverflowKeepsSecurity(t *testing.T) {
	p := model.NewPortfolio()
	log := logger.NewNopLogger()
	for _, name := range []string{"Apple", "Gold"} {
		_, err := UpdatePortfolio(p, AddSecurity{Name: name}, log)
		require.NoError(t, err)
	}

	p.Open(0)
	_, err := UpdatePortfolio(p, AddEntry{Date: "d", Amount: "1", Price: "1e308"}, log)
	require.NoError(t, err)

	p.Open(1)
	_, err = UpdatePortfolio(p, AddEntry{Date: "d", Amount: "1", Price: "1"}, log)
	require.NoError(t, err)

	// Gold alone stays finite, the portfolio total would not
	s, err := UpdatePortfolio(p, AddEntry{Date: "d", Amount: "1", Price: "1e308"}, log)
	assert.Equal(t, Error(CodeInvalidNumber), s)
	assert.ErrorIs(t, err, model.ErrValueOverflow)
	assert.Len(t, p.Securities[1].Entries, 1)
	assert.Equal(t, uint32(1), p.Securities[1].TotalQuantity())
	assert.Equal(t, 1.0, p.Securities[1].InvestedValue())
	assert.False(t, math.IsInf(p.Totals().Invested, 0))
}

func TestUpdatePortfolioSetCurrentPriceOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		wantErr error
	}{
		{name: "infinite price", price: "1e400", wantErr: ErrInvalidNumber},
		{name: "overflowing value", price: "1e308", wantErr: model.ErrValueOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.NewPortfolio()
			log := logger.NewNopLogger()
			_, err := UpdatePortfolio(p, AddSecurity{Name: "Apple"}, log)
			require.NoError(t, err)
			p.Open(0)
			_, err = UpdatePortfolio(p, AddEntry{Date: "d", Amount: "10", Price: "1"}, log)
			require.NoError(t, err)
			_, err = UpdatePortfolio(p, SetCurrentPrice{Price: "2"}, log)
			require.NoError(t, err)

			s, err := UpdatePortfolio(p, SetCurrentPrice{Price: tt.price}, log)
			assert.Equal(t, Error(CodeInvalidNumber), s)
			assert.ErrorIs(t, err, tt.wantErr)

			sec := p.Securities[0]
			assert.Equal(t, 2.0, sec.CurrentPrice())
			assert.Equal(t, 20.0, sec.CurrentValue())
		})
	}
}

func TestParsePrice(t *testing.T) {
	got, err := ParsePrice("5,50")
	require.NoError(t, err)
	assert.Equal(t, 5.5, got)

	got, err = ParsePrice("0")
	require.NoError(t, err)
	assert.Zero(t, got)

	for _, text := range []string{"five", "1e400", "-1e400"} {
		_, err = ParsePrice(text)
		assert.ErrorIs(t, err, ErrInvalidNumber, text)
	}
}

func TestParseQuantity(t *testing.T) {
	got, err := ParseQuantity("255")
	require.NoError(t, err)
	assert.Equal(t, uint32(255), got)

	_, err = ParseQuantity("4294967296")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}
