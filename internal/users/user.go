// Package users implements the user record rules: the age limit check, the
// full and partial update merges, and the operations that apply them on top
// of a Repository.
package users

import (
	"time"

	"github.com/remiges-tech/usersvc/wscutils"
)

// User is a stored user record. ID is assigned by the Repository on first
// save and never changes afterwards. Address and PhoneNumber are optional
// and empty when not set. BirthDate is a calendar day at UTC midnight.
type User struct {
	ID          int64
	Email       string
	FirstName   string
	LastName    string
	BirthDate   time.Time
	Address     string
	PhoneNumber string
}

// Patch is a partial user record. A field that is absent or null leaves the
// stored value unchanged.
type Patch struct {
	Email       wscutils.Optional[string]
	FirstName   wscutils.Optional[string]
	LastName    wscutils.Optional[string]
	BirthDate   wscutils.Optional[time.Time]
	Address     wscutils.Optional[string]
	PhoneNumber wscutils.Optional[string]
}

// Config holds the settings of the user rules. It is fixed for the lifetime
// of the process.
type Config struct {
	// AgeLimit is the minimum age in whole years a user must have.
	AgeLimit int
}
