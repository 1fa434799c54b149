// Package pgstore stores users in PostgreSQL through a pgx pool.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/remiges-tech/usersvc/internal/users"
)

var _ users.Repository = (*Store)(nil)

const userColumns = `id, email, first_name, last_name, birth_date, address, phone_number`

// Store is a users.Repository on the users table.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) FindByID(ctx context.Context, id int64) (users.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

func (s *Store) Save(ctx context.Context, u users.User) (users.User, error) {
	if u.ID == 0 {
		return s.insert(ctx, u)
	}
	return s.update(ctx, u)
}

func (s *Store) insert(ctx context.Context, u users.User) (users.User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, first_name, last_name, birth_date, address, phone_number)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		u.Email, u.FirstName, u.LastName, toDate(u.BirthDate), toText(u.Address), toText(u.PhoneNumber))
	stored, err := scanUser(row)
	if err != nil {
		return users.User{}, fmt.Errorf("insert user: %w", err)
	}
	return stored, nil
}

func (s *Store) update(ctx context.Context, u users.User) (users.User, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE users
		 SET email = $2, first_name = $3, last_name = $4, birth_date = $5, address = $6, phone_number = $7
		 WHERE id = $1
		 RETURNING `+userColumns,
		u.ID, u.Email, u.FirstName, u.LastName, toDate(u.BirthDate), toText(u.Address), toText(u.PhoneNumber))
	stored, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return stored, nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (s *Store) FindAll(ctx context.Context) ([]users.User, error) {
	return s.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (s *Store) FindByBirthDateBetween(ctx context.Context, from, to time.Time) ([]users.User, error) {
	return s.query(ctx,
		`SELECT `+userColumns+` FROM users WHERE birth_date BETWEEN $1 AND $2 ORDER BY id`,
		toDate(from), toDate(to))
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]users.User, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	found := []users.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		found = append(found, u)
	}
	return found, rows.Err()
}

func scanUser(row pgx.Row) (users.User, error) {
	var (
		u           users.User
		birthDate   pgtype.Date
		address     pgtype.Text
		phoneNumber pgtype.Text
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &birthDate, &address, &phoneNumber); err != nil {
		return users.User{}, err
	}
	u.BirthDate = birthDate.Time
	u.Address = address.String
	u.PhoneNumber = phoneNumber.String
	return u, nil
}

func toDate(t time.Time) pgtype.Date {
	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// toText stores an empty optional field as NULL.
func toText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
