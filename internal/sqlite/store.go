// Package sqlite implements an address book Store backed by a SQLite
// database file. The database holds the same flat snapshot as the JSONL
// store: one contacts row per record and one phones row per number.
package sqlite

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// FileName is the database file created inside the data directory.
const FileName = "addressbook.db"

//go:embed schema.sql
var schemaSQL string

// Store reads and writes the snapshot in the database at Path. Each Load and
// Save opens its own connection.
type Store struct {
	Path   string
	logger *zap.Logger
}

var _ types.Store = (*Store)(nil)

// NewStore returns a Store for FileName inside dataDir. A nil logger
// disables logging.
func NewStore(dataDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{Path: filepath.Join(dataDir, FileName), logger: logger}
}

// Load reads every contact in ordinal order. A missing database file yields
// an empty book and is not created.
func (s *Store) Load() (*types.AddressBook, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("no database, starting empty", zap.String("path", s.Path))
		return types.NewAddressBook(), nil
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap, err := readSnapshot(db)
	if err != nil {
		return nil, err
	}

	book, err := types.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("restoring %s: %w", s.Path, err)
	}
	s.logger.Debug("database loaded", zap.String("path", s.Path), zap.Int("contacts", book.Len()))
	return book, nil
}

// Save replaces all rows with the book's snapshot in a single transaction.
func (s *Store) Save(b *types.AddressBook) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	snap := b.Snapshot()
	if err := writeSnapshot(db, snap); err != nil {
		return err
	}
	s.logger.Debug("database saved", zap.String("path", s.Path), zap.Int("contacts", len(snap)))
	return nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return db, nil
}

func readSnapshot(db *sql.DB) (types.Snapshot, error) {
	rows, err := db.Query("SELECT contact_id, name, birthday FROM contacts ORDER BY ordinal")
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var (
		snap types.Snapshot
		ids  []string
	)
	for rows.Next() {
		var (
			id, name string
			birthday sql.NullString
		)
		if err := rows.Scan(&id, &name, &birthday); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		rs := types.RecordSnapshot{Name: name, Phones: []string{}}
		if birthday.Valid {
			v := birthday.String
			rs.Birthday = &v
		}
		snap = append(snap, rs)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	for i, id := range ids {
		phones, err := readPhones(db, id)
		if err != nil {
			return nil, err
		}
		snap[i].Phones = phones
	}
	return snap, nil
}

func readPhones(db *sql.DB, contactID string) ([]string, error) {
	rows, err := db.Query("SELECT phone FROM phones WHERE contact_id = ? ORDER BY ordinal", contactID)
	if err != nil {
		return nil, fmt.Errorf("querying phones: %w", err)
	}
	defer rows.Close()

	phones := []string{}
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, fmt.Errorf("scanning phone: %w", err)
		}
		phones = append(phones, phone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phones: %w", err)
	}
	return phones, nil
}

func writeSnapshot(db *sql.DB, snap types.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM phones"); err != nil {
		return fmt.Errorf("clearing phones: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clearing contacts: %w", err)
	}

	for i, rs := range snap {
		id := generateUUID()
		var birthday sql.NullString
		if rs.Birthday != nil {
			birthday = sql.NullString{String: *rs.Birthday, Valid: true}
		}
		if _, err := tx.Exec(
			"INSERT INTO contacts (contact_id, name, birthday, ordinal) VALUES (?, ?, ?, ?)",
			id, rs.Name, birthday, i,
		); err != nil {
			return fmt.Errorf("inserting contact %q: %w", rs.Name, err)
		}
		for j, phone := range rs.Phones {
			if _, err := tx.Exec(
				"INSERT INTO phones (contact_id, ordinal, phone) VALUES (?, ?, ?)",
				id, j, phone,
			); err != nil {
				return fmt.Errorf("inserting phone for %q: %w", rs.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

// generateUUID generates a new UUID v7 for contact row IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
