package types

import "time"

// DefaultBirthdayWindow is the number of days the birthdays query looks ahead.
const DefaultBirthdayWindow = 7

// AddressBook maps contact names to records. Names are unique and every key
// equals its record's name. Iteration follows insertion order.
//
// An AddressBook is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// NewAddressBook returns an empty AddressBook.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. An existing record with the same name
// is replaced and keeps its position.
func (b *AddressBook) AddRecord(r *Record) {
	key := r.Name().String()
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record stored under name.
// Returns ErrContactNotFound if there is none.
func (b *AddressBook) Find(name string) (*Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, ErrContactNotFound
	}
	return r, nil
}

// Delete removes the record stored under name and reports whether it
// existed. Deleting an absent name is a no-op.
func (b *AddressBook) Delete(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	for i, key := range b.order {
		if key == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.order) }

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// UpcomingBirthdays returns the records whose birthday, projected onto the
// year of ref, falls within [ref, ref+windowDays] inclusive. Only the date
// of ref is used. Results follow insertion order.
func (b *AddressBook) UpcomingBirthdays(windowDays int, ref time.Time) []*Record {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, windowDays)

	var upcoming []*Record
	for _, r := range b.Records() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		next := bd.In(start.Year())
		if !next.Before(start) && !next.After(end) {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming
}
