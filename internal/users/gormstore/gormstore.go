// Package gormstore stores users in PostgreSQL through gorm. The schema is
// owned by the migrations in internal/pg; gorm only maps rows.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remiges-tech/logharbour/logharbour"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/remiges-tech/usersvc/internal/users"
)

var _ users.Repository = (*Store)(nil)

type userRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Email       string    `gorm:"not null"`
	FirstName   string    `gorm:"not null"`
	LastName    string    `gorm:"not null"`
	BirthDate   time.Time `gorm:"type:date;not null;index:users_birth_date_idx"`
	Address     *string
	PhoneNumber *string
}

func (userRow) TableName() string {
	return "users"
}

func toRow(u users.User) userRow {
	return userRow{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		BirthDate:   dateOf(u.BirthDate),
		Address:     nullable(u.Address),
		PhoneNumber: nullable(u.PhoneNumber),
	}
}

func (r userRow) toUser() users.User {
	u := users.User{
		ID:        r.ID,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: dateOf(r.BirthDate),
	}
	if r.Address != nil {
		u.Address = *r.Address
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = *r.PhoneNumber
	}
	return u
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Open connects gorm to the PostgreSQL database at connURL. SQL statements
// are logged to logger.
func Open(connURL string, logger *logharbour.Logger, slowThreshold time.Duration) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connURL), &gorm.Config{
		Logger: NewLogger(logger, slowThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open gorm connection: %w", err)
	}
	return db, nil
}

// Store is a users.Repository backed by gorm.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindByID(ctx context.Context, id int64) (users.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, fmt.Errorf("select user %d: %w", id, err)
	}
	return row.toUser(), nil
}

func (s *Store) Save(ctx context.Context, u users.User) (users.User, error) {
	row := toRow(u)

	if row.ID == 0 {
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return users.User{}, fmt.Errorf("insert user: %w", err)
		}
		return row.toUser(), nil
	}

	res := s.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", row.ID).Updates(map[string]any{
		"email":        row.Email,
		"first_name":   row.FirstName,
		"last_name":    row.LastName,
		"birth_date":   row.BirthDate,
		"address":      row.Address,
		"phone_number": row.PhoneNumber,
	})
	if res.Error != nil {
		return users.User{}, fmt.Errorf("update user %d: %w", row.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return users.User{}, users.ErrNotFound
	}
	return row.toUser(), nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&userRow{}, id).Error; err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (s *Store) FindAll(ctx context.Context) ([]users.User, error) {
	var rows []userRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return toUsers(rows), nil
}

func (s *Store) FindByBirthDateBetween(ctx context.Context, from, to time.Time) ([]users.User, error) {
	var rows []userRow
	err := s.db.WithContext(ctx).
		Where("birth_date BETWEEN ? AND ?", dateOf(from), dateOf(to)).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query users by birth date: %w", err)
	}
	return toUsers(rows), nil
}

func toUsers(rows []userRow) []users.User {
	found := make([]users.User, 0, len(rows))
	for _, r := range rows {
		found = append(found, r.toUser())
	}
	return found
}
