package user

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remiges-tech/usersvc/internal/users"
	"github.com/remiges-tech/usersvc/internal/users/memstore"
	"github.com/remiges-tech/usersvc/logger"
	"github.com/remiges-tech/usersvc/service"
	"github.com/remiges-tech/usersvc/wscutils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testResponse struct {
	Status   string                  `json:"status"`
	Data     json.RawMessage         `json:"data"`
	Messages []wscutils.ErrorMessage `json:"messages"`
}

func newRouter(repo users.Repository) *gin.Engine {
	r := gin.New()
	s := service.NewService(r).WithLogger(logger.Discard())
	RegisterRoutes(s, users.NewService(repo, users.Config{AgeLimit: 18}, logger.Discard(), nil))
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, testResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func decodeUser(t *testing.T, resp testResponse) UserResponse {
	t.Helper()
	var u UserResponse
	require.NoError(t, json.Unmarshal(resp.Data, &u))
	return u
}

func decodeUsers(t *testing.T, resp testResponse) []UserResponse {
	t.Helper()
	var list []UserResponse
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	return list
}

func errCodes(resp testResponse) map[string]string {
	codes := make(map[string]string, len(resp.Messages))
	for _, m := range resp.Messages {
		codes[m.Field] = m.ErrCode
	}
	return codes
}

const validUser = `{"data": {
	"email": "jane.doe@gmail.com",
	"firstName": "Jane",
	"lastName": "Doe",
	"birthDate": "1990-01-01",
	"address": "1 Main street",
	"phoneNumber": "1234567890"
}}`

func createUser(t *testing.T, r http.Handler, email, birthDate string) UserResponse {
	t.Helper()
	body := `{"data": {"email": "` + email + `", "firstName": "F", "lastName": "L", "birthDate": "` + birthDate + `"}}`
	code, resp := do(t, r, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusOK, code, resp.Messages)
	return decodeUser(t, resp)
}

func TestCreateUser(t *testing.T) {
	r := newRouter(memstore.New())

	code, resp := do(t, r, http.MethodPost, "/api/users", validUser)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, wscutils.SuccessStatus, resp.Status)
	assert.Equal(t, UserResponse{
		ID:          1,
		Email:       "jane.doe@gmail.com",
		FirstName:   "Jane",
		LastName:    "Doe",
		BirthDate:   "1990-01-01",
		Address:     "1 Main street",
		PhoneNumber: "1234567890",
	}, decodeUser(t, resp))
}

func TestCreateUserValidationFailure(t *testing.T) {
	r := newRouter(memstore.New())

	code, resp := do(t, r, http.MethodPost, "/api/users", `{"data": {
		"email": "jane@yahoo.com",
		"lastName": "Doe",
		"birthDate": "2999-01-01",
		"phoneNumber": "12345"
	}}`)

	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, wscutils.ErrorStatus, resp.Status)
	assert.Equal(t, map[string]string{
		FieldEmail:       "invalid_email",
		FieldFirstName:   "required",
		FieldBirthDate:   "past_date",
		FieldPhoneNumber: "invalid_phone",
	}, errCodes(resp))

	for _, m := range resp.Messages {
		if m.Field == FieldEmail {
			assert.Equal(t, []string{"jane@yahoo.com"}, m.Vals)
		}
	}
}

func TestCreateUserBadDate(t *testing.T) {
	r := newRouter(memstore.New())

	code, resp := do(t, r, http.MethodPost, "/api/users",
		`{"data": {"email": "a@gmail.com", "firstName": "A", "lastName": "B", "birthDate": "01/02/1990"}}`)

	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]string{FieldBirthDate: "invalid_date"}, errCodes(resp))
}

func TestCreateUserBelowAgeLimit(t *testing.T) {
	r := newRouter(memstore.New())

	code, resp := do(t, r, http.MethodPost, "/api/users",
		`{"data": {"email": "kid@gmail.com", "firstName": "K", "lastName": "Id", "birthDate": "2020-01-01"}}`)

	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, ErrCodeInvalidAge, resp.Messages[0].ErrCode)
	assert.Equal(t, []string{"18"}, resp.Messages[0].Vals)

	_, list := do(t, r, http.MethodGet, "/api/users", "")
	assert.Empty(t, decodeUsers(t, list))
}

func TestCreateUserInvalidJSON(t *testing.T) {
	r := newRouter(memstore.New())

	code, resp := do(t, r, http.MethodPost, "/api/users", `{"data": `)

	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "invalid_json", resp.Messages[0].ErrCode)
}

func TestUpdateUser(t *testing.T) {
	r := newRouter(memstore.New())
	created := createUser(t, r, "old@gmail.com", "1990-01-01")

	code, resp := do(t, r, http.MethodPut, "/api/users/1",
		`{"data": {"id": 50, "email": "new@gmail.com", "firstName": "N", "lastName": "Ew", "birthDate": "2015-05-05"}}`)

	require.Equal(t, http.StatusOK, code, resp.Messages)
	assert.Equal(t, UserResponse{
		ID:        created.ID,
		Email:     "new@gmail.com",
		FirstName: "N",
		LastName:  "Ew",
		BirthDate: "2015-05-05",
	}, decodeUser(t, resp))
}

func TestUpdateUserNotFound(t *testing.T) {
	r := newRouter(memstore.New())

	code, resp := do(t, r, http.MethodPut, "/api/users/99", validUser)

	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, ErrCodeNotFound, resp.Messages[0].ErrCode)
	assert.Equal(t, []string{"99"}, resp.Messages[0].Vals)
}

func TestInvalidPathID(t *testing.T) {
	r := newRouter(memstore.New())

	for _, path := range []string{"/api/users/abc", "/api/users/0", "/api/users/-3"} {
		code, resp := do(t, r, http.MethodDelete, path, "")
		require.Equal(t, http.StatusBadRequest, code, path)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, ErrCodeInvalidID, resp.Messages[0].ErrCode)
	}
}

func TestPatchUser(t *testing.T) {
	r := newRouter(memstore.New())
	created := createUser(t, r, "old@gmail.com", "1990-01-01")

	code, resp := do(t, r, http.MethodPatch, "/api/users/1",
		`{"data": {"firstName": "Patched", "email": null, "address": "Somewhere"}}`)

	require.Equal(t, http.StatusOK, code, resp.Messages)
	want := created
	want.FirstName = "Patched"
	want.Address = "Somewhere"
	assert.Equal(t, want, decodeUser(t, resp))
}

func TestPatchUserBirthDate(t *testing.T) {
	r := newRouter(memstore.New())
	createUser(t, r, "old@gmail.com", "1990-01-01")

	code, resp := do(t, r, http.MethodPatch, "/api/users/1", `{"data": {"birthDate": "1980-02-29"}}`)
	require.Equal(t, http.StatusOK, code, resp.Messages)
	assert.Equal(t, "1980-02-29", decodeUser(t, resp).BirthDate)

	code, resp = do(t, r, http.MethodPatch, "/api/users/1", `{"data": {"firstName": "X", "birthDate": "2020-01-01"}}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, ErrCodeInvalidAge, resp.Messages[0].ErrCode)

	_, list := do(t, r, http.MethodGet, "/api/users", "")
	stored := decodeUsers(t, list)
	require.Len(t, stored, 1)
	assert.Equal(t, "F", stored[0].FirstName, "a rejected patch changes nothing")
	assert.Equal(t, "1980-02-29", stored[0].BirthDate)
}

func TestPatchUserValidation(t *testing.T) {
	r := newRouter(memstore.New())
	createUser(t, r, "old@gmail.com", "1990-01-01")

	code, resp := do(t, r, http.MethodPatch, "/api/users/1",
		`{"data": {"email": "bad", "phoneNumber": "12", "lastName": "", "birthDate": "tomorrow"}}`)

	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]string{
		FieldEmail:       "invalid_email",
		FieldPhoneNumber: "invalid_phone",
		FieldLastName:    "required",
		FieldBirthDate:   "invalid_date",
	}, errCodes(resp))
}

func TestPatchUserNotFound(t *testing.T) {
	r := newRouter(memstore.New())

	code, resp := do(t, r, http.MethodPatch, "/api/users/5", `{"data": {"firstName": "X"}}`)

	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, ErrCodeNotFound, resp.Messages[0].ErrCode)
}

func TestDeleteUser(t *testing.T) {
	r := newRouter(memstore.New())
	createUser(t, r, "a@gmail.com", "1990-01-01")

	code, _ := do(t, r, http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, r, http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusOK, code, "deleting a missing user succeeds")

	_, list := do(t, r, http.MethodGet, "/api/users", "")
	assert.Empty(t, decodeUsers(t, list))
}

func TestListUsers(t *testing.T) {
	r := newRouter(memstore.New())
	createUser(t, r, "a@gmail.com", "1990-01-01")
	createUser(t, r, "b@gmail.com", "1970-01-01")

	code, resp := do(t, r, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusOK, code)
	list := decodeUsers(t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, "a@gmail.com", list[0].Email)
	assert.Equal(t, "b@gmail.com", list[1].Email)
}

func TestUsersByBirthDateRange(t *testing.T) {
	r := newRouter(memstore.New())
	createUser(t, r, "a@gmail.com", "1990-01-01")
	createUser(t, r, "b@gmail.com", "1970-01-01")
	createUser(t, r, "c@gmail.com", "1995-06-30")

	code, resp := do(t, r, http.MethodGet, "/api/users/range?fromDate=1990-01-01&toDate=1995-06-30", "")

	require.Equal(t, http.StatusOK, code)
	list := decodeUsers(t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, "a@gmail.com", list[0].Email)
	assert.Equal(t, "c@gmail.com", list[1].Email)

	code, resp = do(t, r, http.MethodGet, "/api/users/range?fromDate=2000-01-01&toDate=2001-01-01", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(resp.Data))
}

// rangeCountingRepository counts the range lookups that reach the store.
type rangeCountingRepository struct {
	*memstore.Store
	rangeCalls int
}

func (r *rangeCountingRepository) FindByBirthDateBetween(ctx context.Context, from, to time.Time) ([]users.User, error) {
	r.rangeCalls++
	return r.Store.FindByBirthDateBetween(ctx, from, to)
}

func TestUsersByBirthDateRangeInvalid(t *testing.T) {
	repo := &rangeCountingRepository{Store: memstore.New()}
	r := newRouter(repo)

	tests := []struct {
		name  string
		query string
		want  map[string]string
	}{
		{"equal dates", "fromDate=1990-01-01&toDate=1990-01-01", map[string]string{FieldFromDate: ErrCodeInvalidRg}},
		{"reversed", "fromDate=1995-01-01&toDate=1990-01-01", map[string]string{FieldFromDate: ErrCodeInvalidRg}},
		{"missing to", "fromDate=1990-01-01", map[string]string{FieldToDate: "required"}},
		{"bad from", "fromDate=1990-13-01&toDate=1995-01-01", map[string]string{FieldFromDate: "invalid_date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := do(t, r, http.MethodGet, "/api/users/range?"+tt.query, "")
			require.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.want, errCodes(resp))
			assert.Zero(t, repo.rangeCalls, "rejected ranges never reach the store")
		})
	}

	code, _ := do(t, r, http.MethodGet, "/api/users/range?fromDate=1990-01-01&toDate=1990-01-02", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, repo.rangeCalls)
}

type failingRepository struct{}

var errDatabaseDown = errors.New("database down")

func (failingRepository) FindByID(context.Context, int64) (users.User, error) {
	return users.User{}, errDatabaseDown
}
func (failingRepository) Save(context.Context, users.User) (users.User, error) {
	return users.User{}, errDatabaseDown
}
func (failingRepository) DeleteByID(context.Context, int64) error { return errDatabaseDown }
func (failingRepository) FindAll(context.Context) ([]users.User, error) {
	return nil, errDatabaseDown
}
func (failingRepository) FindByBirthDateBetween(context.Context, time.Time, time.Time) ([]users.User, error) {
	return nil, errDatabaseDown
}

func TestStoreFailureIsInternalError(t *testing.T) {
	r := newRouter(failingRepository{})

	code, resp := do(t, r, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusInternalServerError, code)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, ErrCodeInternal, resp.Messages[0].ErrCode)

	code, _ = do(t, r, http.MethodPost, "/api/users", validUser)
	assert.Equal(t, http.StatusInternalServerError, code)

	code, _ = do(t, r, http.MethodPut, "/api/users/1", validUser)
	assert.Equal(t, http.StatusInternalServerError, code)
}
