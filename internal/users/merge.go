package users

import (
	"time"

	"github.com/remiges-tech/logharbour/logharbour"
)

// Replace returns replacement carrying the identifier of existing. Every
// other field comes from replacement.
func Replace(existing, replacement User) User {
	replaced := replacement
	replaced.ID = existing.ID
	return replaced
}

// Merge applies a partial update to existing and returns the result; existing
// itself is not modified. Each field takes the incoming value when one was
// sent and keeps the stored value otherwise. A sent birth date must pass the
// age limit, and when it does not the whole merge fails with *InvalidAgeError.
func Merge(existing User, p Patch, ageLimit int, now time.Time) (User, error) {
	merged := existing

	merged.Address = p.Address.OrElse(existing.Address)
	merged.Email = p.Email.OrElse(existing.Email)
	merged.FirstName = p.FirstName.OrElse(existing.FirstName)
	merged.LastName = p.LastName.OrElse(existing.LastName)
	merged.PhoneNumber = p.PhoneNumber.OrElse(existing.PhoneNumber)

	if birthDate, ok := p.BirthDate.Get(); ok {
		if _, err := IsAboveAgeLimit(birthDate, ageLimit, now); err != nil {
			return User{}, err
		}
		merged.BirthDate = birthDate
	}

	return merged, nil
}

// changes lists the fields that differ between before and after, for data
// change logs.
func changes(before, after User) []logharbour.ChangeDetail {
	var details []logharbour.ChangeDetail
	add := func(field string, oldVal, newVal any) {
		if oldVal != newVal {
			details = append(details, logharbour.ChangeDetail{Field: field, OldVal: oldVal, NewVal: newVal})
		}
	}
	add("email", before.Email, after.Email)
	add("firstName", before.FirstName, after.FirstName)
	add("lastName", before.LastName, after.LastName)
	add("birthDate", formatDate(before.BirthDate), formatDate(after.BirthDate))
	add("address", before.Address, after.Address)
	add("phoneNumber", before.PhoneNumber, after.PhoneNumber)
	return details
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
