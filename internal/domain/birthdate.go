package domain

import (
	"fmt"
	"time"
)

// Default age bounds for children tracked by the service.
const (
	DefaultMinAgeYears = 0
	DefaultMaxAgeYears = 18
)

// BirthDate is a validated date of birth. The zero value is invalid;
// construct through NewBirthDate.
type BirthDate struct {
	date time.Time
}

// NewBirthDate validates a date of birth against the default age bounds.
func NewBirthDate(date time.Time) (BirthDate, error) {
	return NewBirthDateWithBounds(date, DefaultMinAgeYears, DefaultMaxAgeYears)
}

// NewBirthDateWithBounds validates a date of birth against custom age bounds.
func NewBirthDateWithBounds(date time.Time, minAge, maxAge int) (BirthDate, error) {
	now := time.Now()
	if date.After(now) {
		return BirthDate{}, fmt.Errorf("birth date cannot be in the future")
	}
	age := ageAt(date, now)
	if age < minAge {
		return BirthDate{}, fmt.Errorf("minimum age is %d years", minAge)
	}
	if age > maxAge {
		return BirthDate{}, fmt.Errorf("maximum age is %d years", maxAge)
	}
	return BirthDate{date: date}, nil
}

// BirthDateFromState restores a persisted birth date without re-running
// the age bounds; a stored child may have aged past the creation bound.
func BirthDateFromState(date time.Time) BirthDate {
	return BirthDate{date: date}
}

// Date returns the underlying date.
func (b BirthDate) Date() time.Time {
	return b.date
}

// Age returns the age in whole years as of now.
func (b BirthDate) Age() int {
	return ageAt(b.date, time.Now())
}

// Equal reports structural equality of two birth dates.
func (b BirthDate) Equal(other BirthDate) bool {
	return b.date.Equal(other.date)
}

// ageAt computes whole years between birth and ref, discounting a year
// when the birthday has not yet passed in ref's year.
func ageAt(birth, ref time.Time) int {
	years := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		years--
	}
	return years
}
