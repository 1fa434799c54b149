package user

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/remiges-tech/usersvc/internal/users"
	"github.com/remiges-tech/usersvc/validations"
	"github.com/remiges-tech/usersvc/wscutils"
)

// UserRequest is the body of create and replace requests.
type UserRequest struct {
	Email       string `json:"email" validate:"required,gmail"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	BirthDate   string `json:"birthDate" validate:"required,isodate,pastdate"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone10"`
}

// PatchRequest is the body of a partial update. Absent and null fields are
// left unchanged.
type PatchRequest struct {
	Email       wscutils.Optional[string] `json:"email"`
	FirstName   wscutils.Optional[string] `json:"firstName"`
	LastName    wscutils.Optional[string] `json:"lastName"`
	BirthDate   wscutils.Optional[string] `json:"birthDate"`
	Address     wscutils.Optional[string] `json:"address"`
	PhoneNumber wscutils.Optional[string] `json:"phoneNumber"`
}

// UserResponse is a stored user as sent to clients.
type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	BirthDate   string `json:"birthDate"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// inputVals reports the rejected value for format errors. A missing value
// has nothing to report.
func inputVals(err validator.FieldError) []string {
	if err.Tag() == "required" {
		return nil
	}
	return []string{fmt.Sprintf("%v", err.Value())}
}

func (r UserRequest) validate() []wscutils.ErrorMessage {
	return wscutils.WscValidate(r, inputVals)
}

// toUser converts a validated request.
func (r UserRequest) toUser() users.User {
	birthDate, _ := validations.ParseDate(r.BirthDate)
	return users.User{
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		BirthDate:   birthDate,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
}

// validate checks the fields that carry a value. Names and email may not be
// blanked; address and phone number may.
func (r PatchRequest) validate() []wscutils.ErrorMessage {
	checks := []struct {
		field string
		value wscutils.Optional[string]
		tags  string
	}{
		{FieldEmail, r.Email, "required," + TagGmail},
		{FieldFirstName, r.FirstName, "required"},
		{FieldLastName, r.LastName, "required"},
		{FieldBirthDate, r.BirthDate, "required," + TagDate + "," + TagPastDate},
		{FieldPhoneNumber, r.PhoneNumber, "omitempty," + TagPhone10},
	}

	var validationErrors []wscutils.ErrorMessage
	for _, check := range checks {
		v, ok := check.value.Get()
		if !ok {
			continue
		}
		validationErrors = append(validationErrors, wscutils.WscValidateVar(check.field, v, check.tags, nonEmpty(v)...)...)
	}
	return validationErrors
}

// toPatch converts a validated request.
func (r PatchRequest) toPatch() users.Patch {
	p := users.Patch{
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
	if s, ok := r.BirthDate.Get(); ok {
		birthDate, _ := validations.ParseDate(s)
		p.BirthDate = wscutils.NewOptional(birthDate)
	} else if r.BirthDate.Null {
		p.BirthDate = wscutils.NewOptionalNull[time.Time]()
	}
	return p
}

func toResponse(u users.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		BirthDate:   u.BirthDate.Format(validations.DATE_INPUT_FORMAT),
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
	}
}

func toResponses(list []users.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toResponse(u))
	}
	return out
}
