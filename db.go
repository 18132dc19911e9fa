package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/lib/pq"
)

// Store keeps the last loaded documents in SQL so the detail view can query
// one team's duals. It is rebuilt on every successful load.
type Store struct {
	db     *sql.DB
	driver string
}

// OpenStore connects to sqlite (default) or postgres and creates the schema.
func OpenStore(driver, dsn string) (*Store, error) {
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("store: unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if driver == "sqlite" {
		// every new connection to :memory: is a fresh, empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS schools (
			seq               INTEGER NOT NULL,
			school            TEXT    NOT NULL,
			conference        TEXT,
			twitter           TEXT    NOT NULL DEFAULT '',
			instagram         TEXT    NOT NULL DEFAULT '',
			primary_color_1   TEXT    NOT NULL DEFAULT '',
			primary_color_2   TEXT,
			secondary_color_1 TEXT,
			secondary_color_2 TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS duals (
			seq             INTEGER NOT NULL,
			meet_date       TEXT    NOT NULL,
			location        TEXT    NOT NULL DEFAULT '',
			criteria        TEXT,
			school          TEXT    NOT NULL,
			score           INTEGER NOT NULL,
			opponent_school TEXT    NOT NULL,
			opponent_score  INTEGER NOT NULL,
			result          TEXT    NOT NULL,
			d1              TEXT    NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_duals_school ON duals(school)`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ReplaceDataset swaps the stored documents for the given ones in a single
// transaction.
func (s *Store) ReplaceDataset(ctx context.Context, duals []DualResult, schools []School) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{`DELETE FROM duals`, `DELETE FROM schools`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("store: clear: %w", err)
		}
	}

	schoolStmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO schools (seq, school, conference, twitter, instagram, primary_color_1, primary_color_2, secondary_color_1, secondary_color_2)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("store: prepare schools: %w", err)
	}
	defer schoolStmt.Close()
	for i, sc := range schools {
		if _, err := schoolStmt.ExecContext(ctx, i, sc.School, nullable(sc.Conference), sc.Twitter, sc.Instagram,
			sc.PrimaryColor1, nullable(sc.PrimaryColor2), nullable(sc.SecondaryColor1), nullable(sc.SecondaryColor2)); err != nil {
			return fmt.Errorf("store: insert school %q: %w", sc.School, err)
		}
	}

	dualStmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO duals (seq, meet_date, location, criteria, school, score, opponent_school, opponent_score, result, d1)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("store: prepare duals: %w", err)
	}
	defer dualStmt.Close()
	for i, d := range duals {
		if _, err := dualStmt.ExecContext(ctx, i, d.Date.String(), d.Location, nullable(d.Criteria), d.School,
			d.Score, d.OpponentSchool, d.OpponentScore, string(d.Result), d.D1); err != nil {
			return fmt.Errorf("store: insert dual %s vs %s: %w", d.School, d.OpponentSchool, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// TeamDuals returns the duals reported by school, in source order.
func (s *Store) TeamDuals(ctx context.Context, school string) ([]DualResult, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT meet_date, location, criteria, school, score, opponent_school, opponent_score, result, d1
		FROM duals
		WHERE school = ?
		ORDER BY seq`), school)
	if err != nil {
		return nil, fmt.Errorf("store: query duals for %q: %w", school, err)
	}
	defer rows.Close()

	var duals []DualResult
	for rows.Next() {
		var (
			d        DualResult
			date     string
			criteria sql.NullString
			result   string
		)
		if err := rows.Scan(&date, &d.Location, &criteria, &d.School, &d.Score,
			&d.OpponentSchool, &d.OpponentScore, &result, &d.D1); err != nil {
			return nil, fmt.Errorf("store: scan dual: %w", err)
		}
		d.Date, _ = ParseDate(date)
		if criteria.Valid {
			c := criteria.String
			d.Criteria = &c
		}
		d.Result = Outcome(result)
		duals = append(duals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterating duals: %w", err)
	}
	return duals, nil
}

// CountDuals reports how many duals are stored.
func (s *Store) CountDuals(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM duals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count duals: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
