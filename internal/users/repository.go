package users

import (
	"context"
	"time"
)

// Repository is the persistence contract for user records.
//
// Save inserts u when u.ID is zero and returns it with the assigned
// identifier; otherwise it overwrites the record with that identifier and
// returns ErrNotFound when there is none. DeleteByID succeeds for unknown
// identifiers. FindAll and FindByBirthDateBetween return records in
// insertion order; the birth date range is inclusive on both ends.
type Repository interface {
	FindByID(ctx context.Context, id int64) (User, error)
	Save(ctx context.Context, u User) (User, error)
	DeleteByID(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]User, error)
	FindByBirthDateBetween(ctx context.Context, from, to time.Time) ([]User, error)
}
