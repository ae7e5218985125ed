package ui

import (
	"fmt"

	"github.com/STTM-NSU/portfolio-tracker/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

// Money formats v with two decimals.
func Money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// SecuritiesTable renders the valuation of every security. The row at
// selected is highlighted; pass -1 for none.
func SecuritiesTable(p *model.Portfolio, selected int, t Theme) string {
	rows := make([][]string, 0, len(p.Securities)+1)
	for i := range p.Securities {
		s := &p.Securities[i]
		rows = append(rows, []string{
			fmt.Sprint(s.ID),
			s.Name,
			fmt.Sprint(s.TotalQuantity()),
			Money(s.InvestedValue()),
			Money(s.CurrentPrice()),
			Money(s.CurrentValue()),
			Money(s.Gain()),
		})
	}
	totals := p.Totals()
	rows = append(rows, []string{
		"", "Total", "", Money(totals.Invested), "", Money(totals.Current), Money(totals.Current - totals.Invested),
	})
	last := len(rows) - 1

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers("ID", "Name", "Quantity", "Invested", "Price", "Value", "Gain").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true).Foreground(t.Primary)
			case row == selected:
				style = style.Reverse(true)
			case row == last:
				style = style.Bold(true)
			}
			if col == 6 && row != table.HeaderRow {
				var v float64
				if row == last {
					v = totals.Current - totals.Invested
				} else {
					v = p.Securities[row].Gain()
				}
				style = style.Inherit(t.gain(v))
			}
			return style
		}).
		String()
}

// EntriesTable lists the purchase lots of s in insertion order.
func EntriesTable(s *model.Security, t Theme) string {
	rows := make([][]string, 0, len(s.Entries))
	for _, e := range s.EntryRows() {
		rows = append(rows, []string{
			e.Date,
			fmt.Sprint(e.Quantity),
			Money(e.PricePerUnit),
			Money(decimal.NewFromFloat(e.PricePerUnit).Mul(decimal.NewFromInt(int64(e.Quantity))).InexactFloat64()),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers("Date", "Amount", "Price per Unit", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true).Foreground(t.Primary)
			}
			return style
		}).
		String()
}
