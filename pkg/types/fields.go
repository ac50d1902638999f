package types

import (
	"regexp"
	"strings"
	"time"
)

// Phone number format: the fixed country code followed by ten digits.
const (
	CountryCode     = "+38"
	phoneDigitCount = 10
)

// BirthdayLayout is the time layout for DD.MM.YYYY birthdays.
const BirthdayLayout = "02.01.2006"

var (
	nonDigit     = regexp.MustCompile(`\D`)
	phonePattern = regexp.MustCompile(`^\+38\d{10}$`)
)

// Name identifies a contact and keys it in the AddressBook.
type Name struct {
	value string
}

// NewName returns a Name for raw. Returns ErrInvalidName if raw is empty or
// only whitespace.
func NewName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, newValidationError("name", raw, ErrInvalidName)
	}
	return Name{value: raw}, nil
}

func (n Name) String() string { return n.value }

// Phone is a phone number normalized to +38 followed by ten digits.
type Phone struct {
	value string
}

// NormalizePhone strips every non-digit character from raw, keeps the last
// ten digits and prepends the country code. The result is not validated;
// inputs with fewer than ten digits produce a short number.
func NormalizePhone(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) > phoneDigitCount {
		digits = digits[len(digits)-phoneDigitCount:]
	}
	return CountryCode + digits
}

// NewPhone normalizes raw and validates the result.
// Returns ErrInvalidPhone if fewer than ten digits remain.
func NewPhone(raw string) (Phone, error) {
	normalized := NormalizePhone(raw)
	if !phonePattern.MatchString(normalized) {
		return Phone{}, newValidationError("phone", raw, ErrInvalidPhone)
	}
	return Phone{value: normalized}, nil
}

// MustPhone is NewPhone that panics on invalid input. Use only in tests.
func MustPhone(raw string) Phone {
	p, err := NewPhone(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Phone) String() string { return p.value }

// Birthday is a calendar date written as DD.MM.YYYY.
type Birthday struct {
	value string
	date  time.Time
}

// NewBirthday parses raw against BirthdayLayout. Returns ErrInvalidBirthday
// for malformed strings and for dates that do not exist, such as 31.04.2024.
func NewBirthday(raw string) (Birthday, error) {
	date, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return Birthday{}, newValidationError("birthday", raw, ErrInvalidBirthday)
	}
	return Birthday{value: raw, date: date}, nil
}

func (b Birthday) String() string { return b.value }

// Date returns the birthday as a UTC date.
func (b Birthday) Date() time.Time { return b.date }

// In returns this birthday's anniversary in the given year. February 29
// falls on March 1 in non-leap years.
func (b Birthday) In(year int) time.Time {
	return time.Date(year, b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the birthday is unset.
func (b Birthday) IsZero() bool { return b.value == "" }
