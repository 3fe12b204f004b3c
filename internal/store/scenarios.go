// Package store provides a SQLite-backed catalogue of saved scenarios.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/theirongolddev/runway/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no scenario has the requested name.
var ErrNotFound = errors.New("scenario not found")

// Store persists named parameter sets.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the scenario database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening scenario db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Save inserts a scenario or replaces the one with the same name. The
// returned scenario carries the stored ID and timestamps; an existing
// scenario keeps its ID and creation time.
func (s *Store) Save(sc model.Scenario) (model.Scenario, error) {
	sc.Name = normalizeName(sc.Name)
	if sc.Name == "" {
		return sc, errors.New("scenario name is required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return sc, err
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now().UTC()
	var id, created string
	err = tx.QueryRow("SELECT id, created_at FROM scenarios WHERE name = ?", sc.Name).Scan(&id, &created)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		sc.ID = uuid.NewString()
		sc.CreatedAt = now
	case err != nil:
		return sc, fmt.Errorf("looking up %s: %w", sc.Name, err)
	default:
		sc.ID = id
		sc.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	}
	sc.UpdatedAt = now

	p := sc.Params
	_, err = tx.Exec(`INSERT OR REPLACE INTO scenarios
		(id, name, preset, schedule, exp_a, exp_b, exp_c, exp_d,
		 log_a, log_b, log_c, log_d, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.Name, sc.Preset, sc.Schedule, p.ExpA, p.ExpB, p.ExpC, p.ExpD,
		p.LogA, p.LogB, p.LogC, p.LogD, sc.Notes,
		sc.CreatedAt.Format(time.RFC3339Nano), sc.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return sc, fmt.Errorf("saving %s: %w", sc.Name, err)
	}

	return sc, tx.Commit()
}

const selectScenario = `SELECT
	id, name, preset, schedule, exp_a, exp_b, exp_c, exp_d,
	log_a, log_b, log_c, log_d, notes, created_at, updated_at
	FROM scenarios`

type scanner interface {
	Scan(dest ...any) error
}

func scanScenario(row scanner) (model.Scenario, error) {
	var sc model.Scenario
	var preset, notes sql.NullString
	var created, updated string
	p := &sc.Params
	err := row.Scan(&sc.ID, &sc.Name, &preset, &sc.Schedule,
		&p.ExpA, &p.ExpB, &p.ExpC, &p.ExpD, &p.LogA, &p.LogB, &p.LogC, &p.LogD,
		&notes, &created, &updated)
	if err != nil {
		return sc, err
	}
	sc.Preset = preset.String
	sc.Notes = notes.String
	sc.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return sc, nil
}

// Get returns the scenario with the given name.
func (s *Store) Get(name string) (model.Scenario, error) {
	sc, err := scanScenario(s.db.QueryRow(selectScenario+" WHERE name = ?", normalizeName(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return sc, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return sc, err
}

// List returns every scenario ordered by name.
func (s *Store) List() ([]model.Scenario, error) {
	rows, err := s.db.Query(selectScenario + " ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// Delete removes the scenario with the given name.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM scenarios WHERE name = ?", normalizeName(name))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Count returns the number of saved scenarios.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scenarios").Scan(&count)
	return count, err
}
