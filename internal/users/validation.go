package users

import (
	"time"

	"github.com/remiges-tech/usersvc/validations"
)

// IsAboveAgeLimit reports whether someone born on birthDate is at least
// ageLimit whole years old on now. It never returns false: a user below the
// limit is reported as an *InvalidAgeError.
func IsAboveAgeLimit(birthDate time.Time, ageLimit int, now time.Time) (bool, error) {
	age := validations.CalculateAge(birthDate, now)
	if age < ageLimit {
		return false, &InvalidAgeError{Limit: ageLimit, Age: age}
	}
	return true, nil
}
