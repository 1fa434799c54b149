// Package validations provide validation functions for user records
package validations

import (
	"regexp"
	"time"
)

var (
	// Compile regex pattern for ten digit phone number validation
	regexPhoneNumber = regexp.MustCompile(`^\d{10}$`)

	// Compile regex pattern for gmail address validation
	regexGmailAddress = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@gmail\.com$`)
)

// DATE_INPUT_FORMAT is the layout of calendar dates exchanged with clients, used for time.Parse()
const DATE_INPUT_FORMAT = "2006-01-02"

// IsValidPhoneNumber checks if a given string is made of exactly ten digits.
// val: the string to be checked as a phone number.
// returns: a boolean indicating whether the given number is valid.
func IsValidPhoneNumber(val string) bool {
	return regexPhoneNumber.MatchString(val)
}

// IsValidGmailAddress checks if the given value is a mail address in the gmail.com domain.
// val: a string representing the address.
// returns: a boolean indicating whether the given address is valid.
func IsValidGmailAddress(val string) bool {
	return regexGmailAddress.MatchString(val)
}

// ParseDate parses a "YYYY-MM-DD" string into a UTC midnight time.Time.
func ParseDate(yyyymmddVal string) (time.Time, error) {
	return time.ParseInLocation(DATE_INPUT_FORMAT, yyyymmddVal, time.UTC)
}

// TruncateToDate drops the clock part of t and returns the calendar day in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPastDate reports whether the calendar day of date is strictly before the calendar day of now.
func IsPastDate(date, now time.Time) bool {
	return TruncateToDate(date).Before(TruncateToDate(now))
}

// CalculateAge calculates the age in whole years from a given birthdate to now,
// accurately accounting for leap years and the exact number of days in each month.
// A birthday that has not been reached yet in the current year does not count, so
// someone born on 29 February turns a year older on 1 March in non-leap years.
//
// Parameters:
// - birthDate: The birthdate as a time.Time object.
// - now: The reference date, usually time.Now().
//
// Returns: The age in years as an integer. It is negative for birthdates after now.
func CalculateAge(birthDate, now time.Time) int {
	birthDate = TruncateToDate(birthDate)
	now = TruncateToDate(now)

	if birthDate.After(now) {
		return -CalculateAge(now, birthDate)
	}

	years := now.Year() - birthDate.Year()

	// After subtracting the years, if the current date is before the birthdate this year, subtract one year.
	beforeBirthdayThisYear := now.Month() < birthDate.Month() || (now.Month() == birthDate.Month() && now.Day() < birthDate.Day())
	if beforeBirthdayThisYear {
		years--
	}

	return years
}
