package validations

import (
	"fmt"
	"time"

	"testing"
)

var referenceDay = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func TestIsValidPhoneNumber(t *testing.T) {
	testCases := []struct {
		phoneNumber string
		isValid     bool
	}{
		{"1234567890", true},
		{"0000000000", true},
		{"123456789", false},
		{"12345678901", false},
		{"+911234567890", false},
		{"12345 67890", false},
		{"abcdefghij", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := IsValidPhoneNumber(tc.phoneNumber); got != tc.isValid {
			t.Errorf("IsValidPhoneNumber(%q) = %v, wanted %v", tc.phoneNumber, got, tc.isValid)
		}
	}
}

func TestIsValidGmailAddress(t *testing.T) {
	testCases := []struct {
		address string
		isValid bool
	}{
		{"test@gmail.com", true},
		{"first.last+tag@gmail.com", true},
		{"a_b-c%d@gmail.com", true},
		{"test@yahoo.com", false},
		{"test@gmail.co", false},
		{"test@gmail.com.evil", false},
		{"@gmail.com", false},
		{"te st@gmail.com", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := IsValidGmailAddress(tc.address); got != tc.isValid {
			t.Errorf("IsValidGmailAddress(%q) = %v, wanted %v", tc.address, got, tc.isValid)
		}
	}
}

func TestCalculateAge(t *testing.T) {
	var tests = []struct {
		name      string
		birthDate time.Time
		now       time.Time
		expected  int
	}{
		{"Birthday passed this year", time.Date(1990, 1, 10, 0, 0, 0, 0, time.UTC), referenceDay, 34},
		{"Birthday not reached yet", time.Date(1990, 10, 10, 0, 0, 0, 0, time.UTC), referenceDay, 33},
		{"Birthday today", time.Date(2006, 3, 15, 0, 0, 0, 0, time.UTC), referenceDay, 18},
		{"Birthday tomorrow", time.Date(2006, 3, 16, 0, 0, 0, 0, time.UTC), referenceDay, 17},
		{"Born today", referenceDay, referenceDay, 0},
		{"Leap day on 28 February", time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), time.Date(2018, 2, 28, 0, 0, 0, 0, time.UTC), 17},
		{"Leap day on 1 March", time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC), 18},
		{"Clock part ignored", time.Date(2006, 3, 15, 23, 59, 0, 0, time.UTC), time.Date(2024, 3, 15, 0, 1, 0, 0, time.UTC), 18},
		{"Future date", time.Date(2030, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), -4},
		{"Future date within a year", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateAge(tt.birthDate, tt.now); got != tt.expected {
				t.Errorf("CalculateAge(%v, %v) = %v, want %v", tt.birthDate, tt.now, got, tt.expected)
			}
		})
	}
}

func TestIsPastDate(t *testing.T) {
	if IsPastDate(referenceDay, referenceDay) {
		t.Errorf("today must not count as past")
	}
	if !IsPastDate(referenceDay.AddDate(0, 0, -1), referenceDay) {
		t.Errorf("yesterday must count as past")
	}
	if IsPastDate(referenceDay.AddDate(0, 0, 1), referenceDay) {
		t.Errorf("tomorrow must not count as past")
	}
}

// ExampleIsValidPhoneNumber prints the outcome of checking a few phone numbers.
func ExampleIsValidPhoneNumber() {
	fmt.Println("1234567890: ", IsValidPhoneNumber("1234567890"))
	fmt.Println("+911234567890: ", IsValidPhoneNumber("+911234567890"))

	// Output:
	// 1234567890:  true
	// +911234567890:  false
}
