// Package store writes body positions over a Julian-day range to SQLite.
package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/errors"
	"github.com/wippyai/swisseph-wasm/sweph"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	body      INTEGER NOT NULL,
	name      TEXT    NOT NULL,
	jd        REAL    NOT NULL,
	utc       TEXT    NOT NULL,
	longitude REAL    NOT NULL,
	latitude  REAL    NOT NULL,
	distance  REAL    NOT NULL,
	speed     REAL    NOT NULL,
	PRIMARY KEY (body, jd)
) WITHOUT ROWID;
`

// Row is one body at one instant.
type Row struct {
	Body      swisseph.Body
	Name      string
	JD        float64 // UT
	Longitude float64
	Latitude  float64
	Distance  float64
	Speed     float64 // degrees per day
}

// Time returns the row's instant in UTC.
func (r Row) Time() time.Time {
	return sweph.TimeOf(r.JD)
}

type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseData, errors.KindInstantiation, err, "open table")
	}
	// one writer; the driver serializes anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "create schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// WritePositions upserts rows in one transaction.
func (s *Store) WritePositions(ctx context.Context, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "begin")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO positions (body, name, jd, utc, longitude, latitude, distance, speed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (body, jd) DO UPDATE SET
			name = excluded.name,
			utc = excluded.utc,
			longitude = excluded.longitude,
			latitude = excluded.latitude,
			distance = excluded.distance,
			speed = excluded.speed`)
	if err != nil {
		return errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "prepare insert")
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx, int32(r.Body), r.Name, r.JD, r.Time().Format(time.RFC3339Nano),
			r.Longitude, r.Latitude, r.Distance, r.Speed)
		if err != nil {
			return errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "insert position")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "commit")
	}
	return nil
}

// Positions returns every stored row for body, ordered by time.
func (s *Store) Positions(ctx context.Context, body swisseph.Body) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT body, name, jd, longitude, latitude, distance, speed
		FROM positions WHERE body = ? ORDER BY jd`, int32(body))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "query positions")
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var b int32
		if err := rows.Scan(&b, &r.Name, &r.JD, &r.Longitude, &r.Latitude, &r.Distance, &r.Speed); err != nil {
			return nil, errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "scan position")
		}
		r.Body = swisseph.Body(b)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "read positions")
	}
	return out, nil
}

// Bodies lists the bodies present in the table.
func (s *Store) Bodies(ctx context.Context) ([]swisseph.Body, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT body FROM positions ORDER BY body`)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "query bodies")
	}
	defer rows.Close()

	var out []swisseph.Body
	for rows.Next() {
		var b int32
		if err := rows.Scan(&b); err != nil {
			return nil, errors.Wrap(errors.PhaseData, errors.KindInvalidData, err, "scan body")
		}
		out = append(out, swisseph.Body(b))
	}
	return out, rows.Err()
}
