package wscutils

// Response status values
const (
	SuccessStatus = "success"
	ErrorStatus   = "error"
)

const (
	ErrcodeUnknown     = "unknown"
	ErrcodeInvalidJson = "invalid_json"
)

// Error message IDs
const (
	ErrMsgIDInvalidJson = 1001 // Represents an invalid JSON error
)

const DefaultMsgID = 9999 // Default message ID for unspecified validation errors
