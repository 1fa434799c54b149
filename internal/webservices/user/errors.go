package user

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remiges-tech/usersvc/internal/users"
	"github.com/remiges-tech/usersvc/service"
	"github.com/remiges-tech/usersvc/validations"
	"github.com/remiges-tech/usersvc/wscutils"
)

// InvalidRangeError reports a birth date range whose start is not before
// its end.
type InvalidRangeError struct {
	From time.Time
	To   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid dates: fromDate %s must be before toDate %s",
		e.From.Format(validations.DATE_INPUT_FORMAT), e.To.Format(validations.DATE_INPUT_FORMAT))
}

// sendError answers err with the standard error envelope. Domain errors are
// client errors and get 400; anything else is logged and gets 500.
func sendError(c *gin.Context, s *service.Service, err error) {
	var (
		ageErr      *users.InvalidAgeError
		notFoundErr *users.NotFoundError
		rangeErr    *InvalidRangeError
	)

	switch {
	case errors.As(err, &ageErr):
		sendMessage(c, wscutils.BuildErrorMessage(MsgIDInvalidAge, ErrCodeInvalidAge, FieldBirthDate, strconv.Itoa(ageErr.Limit)))
	case errors.As(err, &notFoundErr):
		sendMessage(c, wscutils.BuildErrorMessage(MsgIDNotFound, ErrCodeNotFound, FieldID, strconv.FormatInt(notFoundErr.ID, 10)))
	case errors.As(err, &rangeErr):
		sendMessage(c, wscutils.BuildErrorMessage(MsgIDInvalidRange, ErrCodeInvalidRg, FieldFromDate,
			rangeErr.From.Format(validations.DATE_INPUT_FORMAT), rangeErr.To.Format(validations.DATE_INPUT_FORMAT)))
	default:
		if s.Logger != nil {
			s.Logger.Error(err).LogActivity("User request failed", map[string]any{"path": c.FullPath()})
		}
		wscutils.SendErrorResponseWithStatus(c, http.StatusInternalServerError,
			wscutils.NewErrorResponse(MsgIDInternalErr, ErrCodeInternal))
	}
}

func sendMessage(c *gin.Context, msg wscutils.ErrorMessage) {
	wscutils.SendErrorResponse(c, wscutils.NewResponse(wscutils.ErrorStatus, nil, []wscutils.ErrorMessage{msg}))
}

func sendValidationErrors(c *gin.Context, validationErrors []wscutils.ErrorMessage) {
	wscutils.SendErrorResponse(c, wscutils.NewResponse(wscutils.ErrorStatus, nil, validationErrors))
}
