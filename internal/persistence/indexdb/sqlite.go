// Package indexdb keeps a queryable index of save slots in SQLite. The
// compressed save files remain the source of truth; the index is for
// listing and tooling.
package indexdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SaveRow is one save slot entry.
type SaveRow struct {
	Name        string `db:"name"`
	Path        string `db:"path"`
	SavedAt     string `db:"saved_at"`
	Micros      int64  `db:"micros"`
	Seed        int64  `db:"seed"`
	Power       int    `db:"power"`
	Settlements int    `db:"settlements"`
	Avatars     int    `db:"avatars"`
	VisibleLand int    `db:"visible_land"`
}

// SQLiteIndex records save slots through a background writer so the
// simulation goroutine never blocks on the database.
type SQLiteIndex struct {
	db *sqlx.DB

	ch   chan SaveRow
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan SaveRow, 64),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sqlx.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sqlx.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS saves (
		name TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		micros INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		power INTEGER NOT NULL,
		settlements INTEGER NOT NULL,
		avatars INTEGER NOT NULL,
		visible_land INTEGER NOT NULL
	);`)
	return err
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// RecordSave queues a save slot entry. Dropped if the writer falls
// behind; the save files remain the source of truth.
func (s *SQLiteIndex) RecordSave(row SaveRow) {
	if s == nil || s.closed.Load() {
		return
	}
	if row.SavedAt == "" {
		row.SavedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	select {
	case s.ch <- row:
	default:
	}
}

// ListSaves returns every slot, most recent first.
func (s *SQLiteIndex) ListSaves() ([]SaveRow, error) {
	var rows []SaveRow
	err := s.db.Select(&rows, `SELECT name, path, saved_at, micros, seed, power, settlements, avatars, visible_land
		FROM saves ORDER BY saved_at DESC`)
	return rows, err
}

// GetSave returns one slot by name.
func (s *SQLiteIndex) GetSave(name string) (SaveRow, bool, error) {
	var row SaveRow
	err := s.db.Get(&row, `SELECT name, path, saved_at, micros, seed, power, settlements, avatars, visible_land
		FROM saves WHERE name = ?`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SaveRow{}, false, nil
		}
		return SaveRow{}, false, err
	}
	return row, true, nil
}

func (s *SQLiteIndex) loop() {
	for row := range s.ch {
		_, err := s.db.NamedExec(`INSERT OR REPLACE INTO saves
			(name, path, saved_at, micros, seed, power, settlements, avatars, visible_land)
			VALUES (:name, :path, :saved_at, :micros, :seed, :power, :settlements, :avatars, :visible_land)`, row)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
		}
	}
}
