package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"github.com/STTM-NSU/portfolio-tracker/internal/model"
	"github.com/jmoiron/sqlx"
)

var _schema = []string{
	`CREATE TABLE IF NOT EXISTS portfolios (
		name             TEXT PRIMARY KEY,
		open_security    INTEGER,
		last_security_id INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS securities (
		portfolio                    TEXT NOT NULL,
		position                     INTEGER NOT NULL,
		id                           INTEGER NOT NULL,
		name                         TEXT NOT NULL,
		quantity                     BIGINT NOT NULL,
		current_price_per_unit       DOUBLE PRECISION NOT NULL,
		current_total_invested_value DOUBLE PRECISION NOT NULL,
		current_total_current_value  DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (portfolio, position)
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		portfolio         TEXT NOT NULL,
		security_position INTEGER NOT NULL,
		position          INTEGER NOT NULL,
		entry_date        TEXT NOT NULL,
		quantity          BIGINT NOT NULL,
		price_per_unit    DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (portfolio, security_position, position)
	)`,
}

const (
	_queryPortfolio  = "SELECT name, open_security, last_security_id FROM portfolios WHERE name = ?"
	_querySecurities = `SELECT position, id, name, quantity, current_price_per_unit,
								current_total_invested_value, current_total_current_value
							FROM securities WHERE portfolio = ? ORDER BY position`
	_queryEntries = `SELECT security_position, position, entry_date, quantity, price_per_unit
							FROM entries WHERE portfolio = ? ORDER BY security_position, position`

	_deleteEntries    = "DELETE FROM entries WHERE portfolio = ?"
	_deleteSecurities = "DELETE FROM securities WHERE portfolio = ?"
	_deletePortfolio  = "DELETE FROM portfolios WHERE name = ?"

	_insertPortfolio = "INSERT INTO portfolios (name, open_security, last_security_id) VALUES (?, ?, ?)"
	_insertSecurity  = `INSERT INTO securities (
								portfolio,
								position,
								id,
								name,
								quantity,
								current_price_per_unit,
								current_total_invested_value,
								current_total_current_value
							) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_insertEntry = `INSERT INTO entries (
								portfolio, security_position, position, entry_date, quantity, price_per_unit
							) VALUES (?, ?, ?, ?, ?, ?)`
)

type portfolioRow struct {
	Name           string        `db:"name"`
	OpenSecurity   sql.NullInt64 `db:"open_security"`
	LastSecurityID int64         `db:"last_security_id"`
}

type securityRow struct {
	Position                  int64   `db:"position"`
	ID                        int64   `db:"id"`
	Name                      string  `db:"name"`
	Quantity                  int64   `db:"quantity"`
	CurrentPricePerUnit       float64 `db:"current_price_per_unit"`
	CurrentTotalInvestedValue float64 `db:"current_total_invested_value"`
	CurrentTotalCurrentValue  float64 `db:"current_total_current_value"`
}

type entryRow struct {
	SecurityPosition int64   `db:"security_position"`
	Position         int64   `db:"position"`
	Date             string  `db:"entry_date"`
	Quantity         int64   `db:"quantity"`
	PricePerUnit     float64 `db:"price_per_unit"`
}

// SQLStore keeps portfolios in the portfolios, securities and entries tables.
// A location is the portfolio name.
type SQLStore struct {
	db     *sqlx.DB
	logger logger.Logger
}

func NewSQLStore(db *sqlx.DB, logger logger.Logger) *SQLStore {
	return &SQLStore{db: db, logger: logger}
}

// Init creates the tables if they do not exist yet.
func (s *SQLStore) Init(ctx context.Context) error {
	for _, stmt := range _schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: can't create schema", err)
		}
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Load(ctx context.Context, location string) (*model.Portfolio, error) {
	var (
		portf      portfolioRow
		securities []securityRow
		entries    []entryRow
	)
	if err := s.db.GetContext(ctx, &portf, s.db.Rebind(_queryPortfolio), location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return nil, fmt.Errorf("%w: can't query portfolio", err)
	}

	if err := s.db.SelectContext(ctx, &securities, s.db.Rebind(_querySecurities), location); err != nil {
		return nil, fmt.Errorf("%w: can't query portfolio securities", err)
	}

	if err := s.db.SelectContext(ctx, &entries, s.db.Rebind(_queryEntries), location); err != nil {
		return nil, fmt.Errorf("%w: can't query portfolio entries", err)
	}

	p := &model.Portfolio{
		Securities:     make([]model.Security, 0, len(securities)),
		LastSecurityID: uint8(portf.LastSecurityID),
	}
	if portf.OpenSecurity.Valid {
		id := uint8(portf.OpenSecurity.Int64)
		p.OpenSecurity = &id
	}

	for _, row := range securities {
		p.Securities = append(p.Securities, model.Security{
			ID:                        uint8(row.ID),
			Name:                      row.Name,
			Quantity:                  uint32(row.Quantity),
			Entries:                   []model.Entry{},
			CurrentPricePerUnit:       row.CurrentPricePerUnit,
			CurrentTotalInvestedValue: row.CurrentTotalInvestedValue,
			CurrentTotalCurrentValue:  row.CurrentTotalCurrentValue,
		})
	}

	for _, row := range entries {
		if row.SecurityPosition < 0 || row.SecurityPosition >= int64(len(p.Securities)) {
			return nil, fmt.Errorf("entry %d refers to missing security %d", row.Position, row.SecurityPosition)
		}
		sec := &p.Securities[row.SecurityPosition]
		sec.Entries = append(sec.Entries, model.Entry{
			Date:         row.Date,
			Quantity:     uint32(row.Quantity),
			PricePerUnit: row.PricePerUnit,
		})
	}

	s.logger.Debugf("loaded portfolio %q: %d securities, %d entries", location, len(securities), len(entries))
	return p, nil
}

// Save replaces the named portfolio inside one transaction.
func (s *SQLStore) Save(ctx context.Context, location string, p *model.Portfolio) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: can't begin tx", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Errorf("%s: can't rollback save of %q", rbErr, location)
			}
		}
	}()

	for _, stmt := range []string{_deleteEntries, _deleteSecurities, _deletePortfolio} {
		if _, err = tx.ExecContext(ctx, tx.Rebind(stmt), location); err != nil {
			return fmt.Errorf("%w: can't clear portfolio", err)
		}
	}

	var open sql.NullInt64
	if p.OpenSecurity != nil {
		open = sql.NullInt64{Int64: int64(*p.OpenSecurity), Valid: true}
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(_insertPortfolio), location, open, int64(p.LastSecurityID)); err != nil {
		return fmt.Errorf("%w: can't insert portfolio", err)
	}

	for i, sec := range p.Securities {
		if _, err = tx.ExecContext(ctx, tx.Rebind(_insertSecurity),
			location,
			i,
			int64(sec.ID),
			sec.Name,
			int64(sec.Quantity),
			sec.CurrentPricePerUnit,
			sec.CurrentTotalInvestedValue,
			sec.CurrentTotalCurrentValue,
		); err != nil {
			return fmt.Errorf("%w: can't insert security %d", err, sec.ID)
		}

		for j, e := range sec.Entries {
			if _, err = tx.ExecContext(ctx, tx.Rebind(_insertEntry),
				location, i, j, e.Date, int64(e.Quantity), e.PricePerUnit,
			); err != nil {
				return fmt.Errorf("%w: can't insert entry %d of security %d", err, j, sec.ID)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: can't commit", err)
	}

	s.logger.Debugf("saved portfolio %q: %d securities", location, len(p.Securities))
	return nil
}
