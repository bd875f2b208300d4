package output

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS observations (
	year          INTEGER NOT NULL,
	category      TEXT    NOT NULL,
	variety       TEXT    NOT NULL,
	wine_category TEXT    NOT NULL,
	district      INTEGER NOT NULL,
	value         REAL    NOT NULL,
	PRIMARY KEY (year, category, variety, district)
)`

// Store persists yearly results in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "open sqlite %s", path)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "create schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces every stored value for the result's year and category.
func (s *Store) Save(ctx context.Context, res *models.YearlyResult) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "begin save")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM observations WHERE year = ? AND category = ?`,
		res.Year, string(res.Category)); err != nil {
		return eris.Wrapf(err, "clear %d/%s", res.Year, res.Category)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO observations
		(year, category, variety, wine_category, district, value) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range res.Records() {
		for _, dv := range rec.Values {
			if _, err = stmt.ExecContext(ctx, res.Year, string(res.Category),
				rec.Variety.Name, string(rec.Variety.Wine), int(dv.District), dv.Value); err != nil {
				return eris.Wrapf(err, "insert %s district %d", rec.Variety.Name, int(dv.District))
			}
		}
	}
	return tx.Commit()
}

// Load reads back the stored result for one year and category.
func (s *Store) Load(ctx context.Context, year int, category models.Category, allow *models.AllowList) (*models.YearlyResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT variety, district, value FROM observations
		WHERE year = ? AND category = ? ORDER BY rowid`, year, string(category))
	if err != nil {
		return nil, eris.Wrapf(err, "load %d/%s", year, category)
	}
	defer rows.Close()

	res := models.NewYearlyResult(year, category)
	for rows.Next() {
		var (
			name     string
			district int
			value    float64
		)
		if err := rows.Scan(&name, &district, &value); err != nil {
			return nil, err
		}
		v, ok := allow.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("stored variety %q not in allow-list", name)
		}
		res.Add(v, models.District(district), value)
	}
	return res, rows.Err()
}
