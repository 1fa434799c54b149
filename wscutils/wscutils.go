// Package wscutils holds the web service conventions shared by every handler:
// the request and response envelopes, validation error reporting and the
// three-state Optional type used by partial updates.
package wscutils

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Request represents the standard structure of a request to the web service.
type Request struct {
	Data any `json:"data" binding:"required"`
}

// Response represents the standard structure of a response of the web service.
type Response struct {
	Status   string         `json:"status"`
	Data     any            `json:"data"`
	Messages []ErrorMessage `json:"messages"`
}

// ErrorMessage defines the format of error part of the standard response object
type ErrorMessage struct {
	MsgID   int      `json:"msgid"`
	ErrCode string   `json:"errcode"`
	Field   string   `json:"field,omitempty"`
	Vals    []string `json:"vals,omitempty"` // omit if Vals is empty
}

var (
	catalogueMu            sync.RWMutex
	validationTagToMsgID   = map[string]int{}
	validationTagToErrCode = map[string]string{}
	defaultMsgID           = DefaultMsgID
	defaultErrCode         = ErrcodeUnknown
	msgIDInvalidJSON       = ErrMsgIDInvalidJson
	errCodeInvalidJSON     = ErrcodeInvalidJson
)

// SetValidationTagToMsgIDMap sets the message id reported for each validator tag.
func SetValidationTagToMsgIDMap(m map[string]int) {
	catalogueMu.Lock()
	defer catalogueMu.Unlock()
	validationTagToMsgID = m
}

// SetValidationTagToErrCodeMap sets the error code reported for each validator tag.
func SetValidationTagToErrCodeMap(m map[string]string) {
	catalogueMu.Lock()
	defer catalogueMu.Unlock()
	validationTagToErrCode = m
}

// SetDefaultMsgID sets the message id used for tags missing from the catalogue.
func SetDefaultMsgID(id int) {
	catalogueMu.Lock()
	defer catalogueMu.Unlock()
	defaultMsgID = id
}

// SetDefaultErrCode sets the error code used for tags missing from the catalogue.
func SetDefaultErrCode(code string) {
	catalogueMu.Lock()
	defer catalogueMu.Unlock()
	defaultErrCode = code
}

// SetMsgIDInvalidJSON sets the message id used when a request body cannot be decoded.
func SetMsgIDInvalidJSON(id int) {
	catalogueMu.Lock()
	defer catalogueMu.Unlock()
	msgIDInvalidJSON = id
}

// SetErrCodeInvalidJSON sets the error code used when a request body cannot be decoded.
func SetErrCodeInvalidJSON(code string) {
	catalogueMu.Lock()
	defer catalogueMu.Unlock()
	errCodeInvalidJSON = code
}

func lookupTag(tag string) (int, string) {
	catalogueMu.RLock()
	defer catalogueMu.RUnlock()
	msgID, ok := validationTagToMsgID[tag]
	if !ok {
		msgID = defaultMsgID
	}
	errCode, ok := validationTagToErrCode[tag]
	if !ok {
		errCode = defaultErrCode
	}
	return msgID, errCode
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in its errors are taken
// from the json tag of the field when there is one.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// RegisterValidation adds a custom validation tag to the shared validator.
func RegisterValidation(tag string, fn validator.Func) error {
	return Validator().RegisterValidation(tag, fn)
}

// WscValidate is a generic function that accepts any data structure,
// validates it according to struct tag-provided validation rules
// and returns a slice of ErrorMessage in case of validation errors.
// getVals supplies the request specific values for each failing field.
func WscValidate[T any](data T, getVals func(err validator.FieldError) []string) []ErrorMessage {
	var validationErrors []ErrorMessage

	err := Validator().Struct(data)

	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, err := range validationErrs {
				vals := getVals(err)
				msgID, errCode := lookupTag(err.Tag())
				validationErrors = append(validationErrors, BuildErrorMessage(msgID, errCode, err.Field(), vals...))
			}
		}
	}
	return validationErrors
}

// WscValidateVar validates a single value against a tag list, reporting failures against field.
func WscValidateVar(field string, value any, tags string, vals ...string) []ErrorMessage {
	err := Validator().Var(value, tags)
	if err == nil {
		return nil
	}
	var validationErrors []ErrorMessage
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, err := range validationErrs {
			msgID, errCode := lookupTag(err.Tag())
			validationErrors = append(validationErrors, BuildErrorMessage(msgID, errCode, field, vals...))
		}
	}
	return validationErrors
}

// BuildErrorMessage generates a ErrorMessage which includes
// the required validation error information such as code, msgcode
// It encapsulates the process of building an error message for consistency.
// Examples:
// Without vals
// errorMessage := BuildErrorMessage(1002, "required", "email")
//
// With vals
// errorMessage := BuildErrorMessage(1003, "invalid_email", "email", "x@y.com")
func BuildErrorMessage(msgid int, errcode string, fieldName string, vals ...string) ErrorMessage {
	return ErrorMessage{
		MsgID:   msgid,
		ErrCode: errcode,
		Field:   fieldName,
		Vals:    vals,
	}
}

// NewResponse is a helper function to create a new web service response
// and any error messages that might need to be sent back to the client. It allows
// for a consistent structure in all API responses
func NewResponse(status string, data any, messages []ErrorMessage) *Response {
	return &Response{
		Status:   status,
		Data:     data,
		Messages: messages,
	}
}

// BindJSON provides a standard way of binding incoming JSON data to a
// given request data structure. It incorporates error handling .
func BindJSON(c *gin.Context, data any) error {
	req := Request{Data: data}
	if err := c.ShouldBindJSON(&req); err != nil {
		catalogueMu.RLock()
		invalidJsonError := BuildErrorMessage(msgIDInvalidJSON, errCodeInvalidJSON, "")
		catalogueMu.RUnlock()
		c.JSON(http.StatusBadRequest, NewResponse(ErrorStatus, nil, []ErrorMessage{invalidJsonError}))
		return err
	}
	return nil
}

// NewErrorResponse simplifies the process of creating a standard error response
// with a single error message
func NewErrorResponse(msgid int, errcode string) *Response {
	return NewResponse(ErrorStatus, nil, []ErrorMessage{BuildErrorMessage(msgid, errcode, "")})
}

// NewSuccessResponse simplifies the process of creating a standard success response
func NewSuccessResponse(data any) *Response {
	return NewResponse(SuccessStatus, data, nil)
}

// SendSuccessResponse sends a JSON response.
func SendSuccessResponse(c *gin.Context, response *Response) {
	c.JSON(http.StatusOK, response)
}

// SendErrorResponse sends a JSON error response.
func SendErrorResponse(c *gin.Context, response *Response) {
	c.JSON(http.StatusBadRequest, response)
}

// SendErrorResponseWithStatus sends a JSON error response with the given HTTP status.
func SendErrorResponseWithStatus(c *gin.Context, status int, response *Response) {
	c.JSON(status, response)
}
