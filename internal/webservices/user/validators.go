package user

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/remiges-tech/usersvc/validations"
	"github.com/remiges-tech/usersvc/wscutils"
)

func init() {
	validators := map[string]validator.Func{
		TagGmail:    isGmail,
		TagPhone10:  isPhone10,
		TagDate:     isDate,
		TagPastDate: isPastDate,
	}
	for tag, fn := range validators {
		if err := wscutils.RegisterValidation(tag, fn); err != nil {
			log.Panicf("failed to register validation %s: %v", tag, err)
		}
	}
}

func isGmail(fl validator.FieldLevel) bool {
	return validations.IsValidGmailAddress(fl.Field().String())
}

func isPhone10(fl validator.FieldLevel) bool {
	return validations.IsValidPhoneNumber(fl.Field().String())
}

// isDate accepts a calendar date in validations.DATE_INPUT_FORMAT.
func isDate(fl validator.FieldLevel) bool {
	_, err := validations.ParseDate(fl.Field().String())
	return err == nil
}

// isPastDate accepts a YYYY-MM-DD string for a day before today.
func isPastDate(fl validator.FieldLevel) bool {
	d, err := validations.ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	return validations.IsPastDate(d, time.Now())
}
