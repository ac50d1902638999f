package types

import (
	"fmt"
	"strings"
)

// BirthdayNotSet is rendered in place of a missing birthday.
const BirthdayNotSet = "N/A"

// Record is one contact: a fixed name, phone numbers in insertion order, and
// an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday Birthday
}

// NewRecord returns an empty Record for name.
// Returns ErrInvalidName if name is empty or whitespace.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone numbers in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	return r.birthday, !r.birthday.IsZero()
}

// AddPhone validates raw and appends it. Equal numbers are not merged; each
// call adds an entry.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes every phone equal to raw after normalization and
// returns how many were removed. Removing an absent number is a no-op.
func (r *Record) RemovePhone(raw string) int {
	target := NormalizePhone(raw)
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.value != target {
			kept = append(kept, p)
		}
	}
	removed := len(r.phones) - len(kept)
	r.phones = kept
	return removed
}

// EditPhone replaces the first phone equal to oldRaw with newRaw.
// Returns ErrPhoneNotFound if no phone matches, or a validation error if
// newRaw is invalid. Phones are unchanged on error.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	i := r.indexOf(oldRaw)
	if i < 0 {
		return ErrPhoneNotFound
	}
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to raw.
// Returns ErrPhoneNotFound if there is none.
func (r *Record) FindPhone(raw string) (Phone, error) {
	i := r.indexOf(raw)
	if i < 0 {
		return Phone{}, ErrPhoneNotFound
	}
	return r.phones[i], nil
}

func (r *Record) indexOf(raw string) int {
	target := NormalizePhone(raw)
	for i, p := range r.phones {
		if p.value == target {
			return i
		}
	}
	return -1
}

// SetBirthday validates raw and stores it, replacing any previous value.
func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = b
	return nil
}

// String renders the record as a single line.
func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.value
	}
	birthday := BirthdayNotSet
	if b, ok := r.Birthday(); ok {
		birthday = b.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s", r.name, strings.Join(phones, "; "), birthday)
}
