// Package storage persists whole portfolios: as JSON documents on disk or as
// rows of a SQL database (postgres or sqlite).
package storage

import (
	"errors"

	"github.com/STTM-NSU/portfolio-tracker/internal/model"
)

var ErrNotFound = errors.New("portfolio not found")

// normalized returns a shallow copy of p whose securities and entries are
// never nil, so they are stored as empty arrays instead of null.
func normalized(p *model.Portfolio) *model.Portfolio {
	out := *p
	out.Securities = make([]model.Security, len(p.Securities))
	copy(out.Securities, p.Securities)
	for i := range out.Securities {
		if out.Securities[i].Entries == nil {
			out.Securities[i].Entries = []model.Entry{}
		}
	}
	return &out
}
