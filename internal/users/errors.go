package users

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Repository implementations when no record has
// the requested identifier.
var ErrNotFound = errors.New("user not found")

// InvalidAgeError reports a birth date that makes the user younger than the
// configured age limit.
type InvalidAgeError struct {
	Limit int
	Age   int
}

func (e *InvalidAgeError) Error() string {
	return fmt.Sprintf("user must be at least %d years old", e.Limit)
}

// NotFoundError reports an identifier with no matching record.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("can not find user by id: %d", e.ID)
}

// Unwrap lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
