package storage

import (
	"github.com/STTM-NSU/portfolio-tracker/internal/model"
)

func samplePortfolio() *model.Portfolio {
	p := model.NewPortfolio()

	apple := model.NewSecurity(0, "Apple", 0)
	apple.AddEntry("2024-01-01", 10, 5.5)
	apple.AddEntry("2024-02-15", 3, 6.25)
	apple.RecomputeInvestedValue()
	apple.SetCurrentPrice(7.1)
	apple.RecomputeCurrentValue()

	empty := model.NewSecurity(1, "Nvidia ✓", 0)

	p.Securities = append(p.Securities, apple, empty)
	p.LastSecurityID = 1
	open := uint8(0)
	p.OpenSecurity = &open
	return p
}
