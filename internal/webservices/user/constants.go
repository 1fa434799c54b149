package user

// JSON field names reported in error messages.
const (
	FieldID          = "id"
	FieldEmail       = "email"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldBirthDate   = "birthDate"
	FieldAddress     = "address"
	FieldPhoneNumber = "phoneNumber"
	FieldFromDate    = "fromDate"
	FieldToDate      = "toDate"
)

// Message ids and error codes for failures detected outside the validator.
const (
	MsgIDInvalidID    = 1101
	ErrCodeInvalidID  = "invalid_id"
	MsgIDInvalidAge   = 1102
	ErrCodeInvalidAge = "invalid_age"
	MsgIDNotFound     = 1103
	ErrCodeNotFound   = "not_found"
	MsgIDInvalidRange = 1104
	ErrCodeInvalidRg  = "invalid_range"
	MsgIDInternalErr  = 1105
	ErrCodeInternal   = "internal"
)

// Custom validator tags.
const (
	TagGmail    = "gmail"
	TagPhone10  = "phone10"
	TagDate     = "isodate"
	TagPastDate = "pastdate"
)

// DependencyKey is the service.Dependencies key of the *users.Service.
const DependencyKey = "users"
