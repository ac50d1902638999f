// Shared helpers for addressbook CLI commands.
package main

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/internal/jsonl"
	"github.com/mesh-intelligence/addressbook/internal/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// openStore returns the Store for the configured backend. cfg must have
// passed Validate.
func openStore(cfg types.Config, logger *zap.Logger) types.Store {
	switch cfg.Backend {
	case types.BackendSQLite:
		return sqlite.NewStore(cfg.DataDir, logger)
	default:
		return jsonl.NewStore(cfg.DataDir, logger)
	}
}

// loadBook loads the persisted book, wrapping failures as system errors.
func (a *app) loadBook() (*types.AddressBook, error) {
	book, err := a.store.Load()
	if err != nil {
		a.logger.Error("load failed", zap.Error(err))
		return nil, sysError(err)
	}
	a.logger.Info("address book loaded", zap.Int("contacts", book.Len()))
	return book, nil
}

// saveBook persists the book, wrapping failures as system errors.
func (a *app) saveBook(book *types.AddressBook) error {
	if err := a.store.Save(book); err != nil {
		a.logger.Error("save failed", zap.Error(err))
		return sysError(err)
	}
	a.logger.Info("address book saved", zap.Int("contacts", book.Len()))
	return nil
}
