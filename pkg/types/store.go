package types

// Store persists AddressBook snapshots between sessions.
type Store interface {
	// Load reads the persisted book. A store with nothing persisted yet
	// returns an empty book and no error.
	Load() (*AddressBook, error)

	// Save replaces the persisted book with the contents of b.
	Save(b *AddressBook) error
}
