package types

import "fmt"

// RecordSnapshot is the persisted form of one Record. It holds only
// primitive values so the format does not depend on the field types.
type RecordSnapshot struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday *string  `json:"birthday"`
}

// Snapshot is the persisted form of an AddressBook, in insertion order.
type Snapshot []RecordSnapshot

// Snapshot returns the book's contents as plain values.
func (b *AddressBook) Snapshot() Snapshot {
	snap := make(Snapshot, 0, b.Len())
	for _, r := range b.Records() {
		rs := RecordSnapshot{
			Name:   r.Name().String(),
			Phones: make([]string, 0, len(r.phones)),
		}
		for _, p := range r.phones {
			rs.Phones = append(rs.Phones, p.String())
		}
		if bd, ok := r.Birthday(); ok {
			v := bd.String()
			rs.Birthday = &v
		}
		snap = append(snap, rs)
	}
	return snap
}

// FromSnapshot rebuilds an AddressBook, validating every stored value with
// the same constructors used for live input. A value that no longer
// validates fails the whole restore with ErrInvalidSnapshot. Empty phone
// strings are skipped.
func FromSnapshot(snap Snapshot) (*AddressBook, error) {
	b := NewAddressBook()
	for _, rs := range snap {
		r, err := restoreRecord(rs)
		if err != nil {
			return nil, fmt.Errorf("%w: record %q: %w", ErrInvalidSnapshot, rs.Name, err)
		}
		b.AddRecord(r)
	}
	return b, nil
}

func restoreRecord(rs RecordSnapshot) (*Record, error) {
	r, err := NewRecord(rs.Name)
	if err != nil {
		return nil, err
	}
	for _, raw := range rs.Phones {
		if raw == "" {
			continue
		}
		if err := r.AddPhone(raw); err != nil {
			return nil, err
		}
	}
	if rs.Birthday != nil && *rs.Birthday != "" {
		if err := r.SetBirthday(*rs.Birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}
