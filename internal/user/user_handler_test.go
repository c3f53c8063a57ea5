package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/alok-mishra143/leave-management-backend/internal/domain"
	"github.com/alok-mishra143/leave-management-backend/internal/user"
	usererrors "github.com/alok-mishra143/leave-management-backend/internal/user/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeUserService struct {
	createFn          func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	registerStudentFn func(ctx context.Context, req user.RegisterStudentRequest) (user.UserResponse, error)
	getAllFn          func(ctx context.Context, role string, page, limit int) ([]user.UserResponse, int64, error)
	getByIDFn         func(ctx context.Context, id string) (user.UserResponse, error)
	listApproversFn   func(ctx context.Context, requesterRole, department string) ([]user.UserResponse, error)
	updateFn          func(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error)
	deleteFn          func(ctx context.Context, id string) error
}

func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeUserService) RegisterStudent(ctx context.Context, req user.RegisterStudentRequest) (user.UserResponse, error) {
	return f.registerStudentFn(ctx, req)
}

func (f *fakeUserService) GetAll(ctx context.Context, role string, page, limit int) ([]user.UserResponse, int64, error) {
	return f.getAllFn(ctx, role, page, limit)
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserService) ListApprovers(ctx context.Context, requesterRole, department string) ([]user.UserResponse, error) {
	return f.listApproversFn(ctx, requesterRole, department)
}

func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeUserService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestUserHandler_Create(t *testing.T) {
	svc := &fakeUserService{
		createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
			assert.Equal(t, "staff@college.edu", req.Email)
			assert.Equal(t, domain.RoleStaff, req.Role)
			return user.UserResponse{ID: uuid.NewString(), Email: req.Email, Role: req.Role}, nil
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"name":"Asha Verma","email":"staff@college.edu","password":"s3cret!","role":"STAFF","department":"CSE"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	svc := &fakeUserService{
		createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrEmailAlreadyRegistered
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"name":"Asha Verma","email":"staff@college.edu","password":"s3cret!","role":"STAFF","department":"CSE"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestUserHandler_Create_RejectsUnknownRole(t *testing.T) {
	h := user.NewHandler(&fakeUserService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"name":"Asha Verma","email":"staff@college.edu","password":"s3cret!","role":"PRINCIPAL","department":"CSE"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestUserHandler_RegisterStudent(t *testing.T) {
	svc := &fakeUserService{
		registerStudentFn: func(ctx context.Context, req user.RegisterStudentRequest) (user.UserResponse, error) {
			return user.UserResponse{ID: uuid.NewString(), Email: req.Email, Role: domain.RoleStudent}, nil
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"name":"Ravi Kumar","email":"ravi@college.edu","password":"s3cret!","department":"ECE"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/users/register-student", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.RegisterStudent(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var env struct {
		Ok   bool              `json:"ok"`
		Data user.UserResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, domain.RoleStudent, env.Data.Role)
}

func TestUserHandler_ListApprovers(t *testing.T) {
	svc := &fakeUserService{
		listApproversFn: func(ctx context.Context, requesterRole, department string) ([]user.UserResponse, error) {
			assert.Equal(t, domain.RoleStudent, requesterRole)
			assert.Equal(t, domain.DepartmentCSE, department)
			return []user.UserResponse{{ID: uuid.NewString(), Role: domain.RoleStaff}}, nil
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/users/approvers/CSE", nil)
	c.Params = gin.Params{{Key: "department", Value: domain.DepartmentCSE}}
	c.Set("role", domain.RoleStudent)

	h.ListApprovers(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Ok   bool                `json:"ok"`
		Data []user.UserResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Len(t, env.Data, 1)
	assert.Equal(t, domain.RoleStaff, env.Data[0].Role)
}

func TestUserHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeUserService{
		getByIDFn: func(ctx context.Context, id string) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/users/x", nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
