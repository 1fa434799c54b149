package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var today = date(2024, 3, 15)

func TestIsAboveAgeLimit(t *testing.T) {
	tests := []struct {
		name      string
		birthDate time.Time
		now       time.Time
		limit     int
		wantAge   int
		wantErr   bool
	}{
		{"well above", date(1990, 1, 10), today, 18, 0, false},
		{"exactly at limit today", date(2006, 3, 15), today, 18, 0, false},
		{"one day short", date(2006, 3, 16), today, 18, 17, true},
		{"zero limit accepts a newborn", date(2024, 3, 14), today, 0, 0, false},
		{"zero limit rejects a future date", date(2024, 3, 16), today, 0, -1, true},
		{"leap day birthday not reached on 28 February", date(2000, 2, 29), date(2023, 2, 28), 23, 22, true},
		{"leap day birthday counted on 1 March", date(2000, 2, 29), date(2023, 3, 1), 23, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := IsAboveAgeLimit(tt.birthDate, tt.limit, tt.now)
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.True(t, ok)
				return
			}
			assert.False(t, ok)
			var ageErr *InvalidAgeError
			require.ErrorAs(t, err, &ageErr)
			assert.Equal(t, tt.limit, ageErr.Limit)
			assert.Equal(t, tt.wantAge, ageErr.Age)
		})
	}
}

func TestInvalidAgeErrorMessage(t *testing.T) {
	_, err := IsAboveAgeLimit(date(2010, 1, 1), 18, today)
	assert.EqualError(t, err, "user must be at least 18 years old")
}

func TestNotFoundErrorMatchesSentinel(t *testing.T) {
	var err error = &NotFoundError{ID: 42}
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "can not find user by id: 42")
}
