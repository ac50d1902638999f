// Package jsonl implements the default address book Store: one JSON object
// per contact, one contact per line, written atomically.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// FileName is the snapshot file created inside the data directory.
const FileName = "addressbook.jsonl"

// Store reads and writes the snapshot file at Path.
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

// Load reads the snapshot file. A missing file yields an empty book. A
// malformed line or an invalid stored value fails the load.
func (s *Store) Load() (*types.AddressBook, error) {
	snap, err := readSnapshot(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("no snapshot, starting empty", zap.String("path", s.Path))
		return types.NewAddressBook(), nil
	}
	if err != nil {
		return nil, err
	}

	book, err := types.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("restoring %s: %w", s.Path, err)
	}
	s.logger.Debug("snapshot loaded", zap.String("path", s.Path), zap.Int("contacts", book.Len()))
	return book, nil
}

// Save writes the book's snapshot, replacing the file atomically. The data
// directory is created if needed.
func (s *Store) Save(b *types.AddressBook) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	snap := b.Snapshot()
	records := make([]json.RawMessage, 0, len(snap))
	for _, rs := range snap {
		data, err := json.Marshal(rs)
		if err != nil {
			return fmt.Errorf("encoding %q: %w", rs.Name, err)
		}
		records = append(records, data)
	}

	if err := writeJSONL(s.Path, records); err != nil {
		return err
	}
	s.logger.Debug("snapshot saved", zap.String("path", s.Path), zap.Int("contacts", len(records)))
	return nil
}

// readSnapshot decodes each non-empty line of path into a RecordSnapshot.
// Lines have no length limit, so anything Save writes can be read back.
func readSnapshot(path string) (types.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var snap types.Snapshot
	r := bufio.NewReader(f)
	for line := 1; ; line++ {
		data, err := r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 {
			var rs types.RecordSnapshot
			if jerr := json.Unmarshal(trimmed, &rs); jerr != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, line, jerr)
			}
			snap = append(snap, rs)
		}
		if errors.Is(err, io.EOF) {
			return snap, nil
		}
	}
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail(fmt.Errorf("writing record: %w", err))
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail(fmt.Errorf("writing newline: %w", err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
