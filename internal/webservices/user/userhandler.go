// Package user serves the user records over HTTP under /api/users. It
// checks request fields, hands valid requests to users.Service and turns
// domain errors into the standard error envelope.
package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/remiges-tech/usersvc/internal/users"
	"github.com/remiges-tech/usersvc/service"
	"github.com/remiges-tech/usersvc/validations"
	"github.com/remiges-tech/usersvc/wscutils"
)

// BasePath is the route group of the user handlers.
const BasePath = "/api/users"

// RegisterRoutes adds the user routes to s, served by us.
func RegisterRoutes(s *service.Service, us *users.Service) {
	s.WithDependency(DependencyKey, us)

	g := s.CreateGroup(BasePath)
	g.RegisterRoute(http.MethodPost, "", HandleCreateUser)
	g.RegisterRoute(http.MethodGet, "", HandleListUsers)
	g.RegisterRoute(http.MethodGet, "/range", HandleUsersByBirthDateRange)
	g.RegisterRoute(http.MethodPut, "/:id", HandleUpdateUser)
	g.RegisterRoute(http.MethodPatch, "/:id", HandlePatchUser)
	g.RegisterRoute(http.MethodDelete, "/:id", HandleDeleteUser)
}

func userService(s *service.Service) *users.Service {
	us, _ := s.Dependencies[DependencyKey].(*users.Service)
	return us
}

func debug(s *service.Service, msg string, data map[string]any) {
	if s.Logger != nil {
		s.Logger.Debug0().LogActivity(msg, data)
	}
}

// HandleCreateUser handles POST /api/users.
func HandleCreateUser(c *gin.Context, s *service.Service) {
	var req UserRequest
	if err := wscutils.BindJSON(c, &req); err != nil {
		return
	}
	debug(s, "CreateUser request parsed", map[string]any{"email": req.Email})

	if validationErrors := req.validate(); len(validationErrors) > 0 {
		sendValidationErrors(c, validationErrors)
		return
	}

	stored, err := userService(s).Create(c.Request.Context(), req.toUser())
	if err != nil {
		sendError(c, s, err)
		return
	}
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(toResponse(stored)))
}

// HandleUpdateUser handles PUT /api/users/:id.
func HandleUpdateUser(c *gin.Context, s *service.Service) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UserRequest
	if err := wscutils.BindJSON(c, &req); err != nil {
		return
	}
	debug(s, "UpdateUser request parsed", map[string]any{"id": id})

	if validationErrors := req.validate(); len(validationErrors) > 0 {
		sendValidationErrors(c, validationErrors)
		return
	}

	stored, err := userService(s).Update(c.Request.Context(), id, req.toUser())
	if err != nil {
		sendError(c, s, err)
		return
	}
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(toResponse(stored)))
}

// HandlePatchUser handles PATCH /api/users/:id.
func HandlePatchUser(c *gin.Context, s *service.Service) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req PatchRequest
	if err := wscutils.BindJSON(c, &req); err != nil {
		return
	}
	debug(s, "PatchUser request parsed", map[string]any{"id": id})

	if validationErrors := req.validate(); len(validationErrors) > 0 {
		sendValidationErrors(c, validationErrors)
		return
	}

	stored, err := userService(s).Patch(c.Request.Context(), id, req.toPatch())
	if err != nil {
		sendError(c, s, err)
		return
	}
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(toResponse(stored)))
}

// HandleDeleteUser handles DELETE /api/users/:id.
func HandleDeleteUser(c *gin.Context, s *service.Service) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := userService(s).Delete(c.Request.Context(), id); err != nil {
		sendError(c, s, err)
		return
	}
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(nil))
}

// HandleListUsers handles GET /api/users.
func HandleListUsers(c *gin.Context, s *service.Service) {
	all, err := userService(s).ListAll(c.Request.Context())
	if err != nil {
		sendError(c, s, err)
		return
	}
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(toResponses(all)))
}

// HandleUsersByBirthDateRange handles GET /api/users/range?fromDate=&toDate=.
// fromDate must be strictly before toDate; both ends are included.
func HandleUsersByBirthDateRange(c *gin.Context, s *service.Service) {
	fromParam := c.Query(FieldFromDate)
	toParam := c.Query(FieldToDate)

	var validationErrors []wscutils.ErrorMessage
	validationErrors = append(validationErrors, wscutils.WscValidateVar(FieldFromDate, fromParam, "required,"+TagDate, nonEmpty(fromParam)...)...)
	validationErrors = append(validationErrors, wscutils.WscValidateVar(FieldToDate, toParam, "required,"+TagDate, nonEmpty(toParam)...)...)
	if len(validationErrors) > 0 {
		sendValidationErrors(c, validationErrors)
		return
	}

	from, _ := validations.ParseDate(fromParam)
	to, _ := validations.ParseDate(toParam)
	if !from.Before(to) {
		sendError(c, s, &InvalidRangeError{From: from, To: to})
		return
	}

	found, err := userService(s).FindByBirthDateRange(c.Request.Context(), from, to)
	if err != nil {
		sendError(c, s, err)
		return
	}
	wscutils.SendSuccessResponse(c, wscutils.NewSuccessResponse(toResponses(found)))
}

// pathID reads the :id parameter. On failure it answers the request and
// returns false.
func pathID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		sendMessage(c, wscutils.BuildErrorMessage(MsgIDInvalidID, ErrCodeInvalidID, FieldID, raw))
		return 0, false
	}
	return id, true
}

func nonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}
