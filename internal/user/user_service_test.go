package user_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alok-mishra143/leave-management-backend/internal/domain"
	"github.com/alok-mishra143/leave-management-backend/internal/leave"
	"github.com/alok-mishra143/leave-management-backend/internal/user"
	usererrors "github.com/alok-mishra143/leave-management-backend/internal/user/errors"
)

type fakeUserRepository struct {
	withTxFn        func(tx *sql.Tx) user.Repository
	createFn        func(ctx context.Context, u *user.User) error
	createBalanceFn func(ctx context.Context, b *leave.LeaveBalance) error
	findByIDFn      func(ctx context.Context, id string) (*user.User, error)
	findAllPagedFn  func(ctx context.Context, role string, page, limit int) ([]user.User, int64, error)
	findApproversFn func(ctx context.Context, department string, roles []string) ([]user.User, error)
	updateFn        func(ctx context.Context, u *user.User) error
	deleteFn        func(ctx context.Context, id string) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) CreateBalance(ctx context.Context, b *leave.LeaveBalance) error {
	if f.createBalanceFn != nil {
		return f.createBalanceFn(ctx, b)
	}
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAllPaged(ctx context.Context, role string, page, limit int) ([]user.User, int64, error) {
	if f.findAllPagedFn != nil {
		return f.findAllPagedFn(ctx, role, page, limit)
	}
	return nil, 0, nil
}

func (f *fakeUserRepository) FindApprovers(ctx context.Context, department string, roles []string) ([]user.User, error) {
	if f.findApproversFn != nil {
		return f.findApproversFn(ctx, department, roles)
	}
	return nil, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type userServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service user.Service
	repo    *fakeUserRepository
}

func setupUserServiceTest(t *testing.T) *userServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeUserRepository{}
	svc := user.NewService(db, repo)

	return &userServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest() user.CreateUserRequest {
	return user.CreateUserRequest{
		Name:       "Asha Verma",
		Email:      "asha.verma@campus.edu",
		Password:   "s3cret-pass",
		Role:       domain.RoleStaff,
		Department: domain.DepartmentCSE,
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and balance in one tx", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var created *user.User
		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			created = u
			return nil
		}
		var balance *leave.LeaveBalance
		deps.repo.createBalanceFn = func(ctx context.Context, b *leave.LeaveBalance) error {
			balance = b
			return nil
		}

		resp, err := deps.service.Create(ctx, validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStaff, created.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret-pass")))

		assert.Equal(t, created.ID, balance.UserID)
		assert.Equal(t, leave.CurrentAcademicYear(time.Now()), balance.AcademicYear)
		assert.True(t, balance.TotalLeaves.Equal(leave.DefaultTotalLeaves))
		assert.True(t, balance.AvailableLeave.Equal(leave.DefaultTotalLeaves))
		assert.True(t, balance.UsedLeaves.IsZero())

		assert.Equal(t, domain.RoleStaff, resp.Role)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}
		}

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyRegistered)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate balance maps to conflict", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createBalanceFn = func(ctx context.Context, b *leave.LeaveBalance) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_leave_balances_user_year"}
		}

		_, err := deps.service.Create(ctx, validCreateRequest())

		assert.ErrorIs(t, err, usererrors.ErrBalanceAlreadyProvisioned)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid role rejected before tx", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.Role = "PRINCIPAL"

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid department rejected before tx", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.Department = "ARTS"

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, usererrors.ErrInvalidDepartment)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestUserService_RegisterStudent(t *testing.T) {
	ctx := context.Background()
	deps := setupUserServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	var created *user.User
	deps.repo.createFn = func(ctx context.Context, u *user.User) error {
		created = u
		return nil
	}

	resp, err := deps.service.RegisterStudent(ctx, user.RegisterStudentRequest{
		Name:       "Ravi Kumar",
		Email:      "ravi.kumar@campus.edu",
		Password:   "first-sem-2026",
		Department: domain.DepartmentECE,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, created.Role)
	assert.Equal(t, domain.RoleStudent, resp.Role)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestUserService_ListApprovers(t *testing.T) {
	ctx := context.Background()

	t.Run("student sees staff of the department", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.repo.findApproversFn = func(ctx context.Context, department string, roles []string) ([]user.User, error) {
			assert.Equal(t, domain.DepartmentCSE, department)
			assert.Equal(t, []string{domain.RoleStaff}, roles)
			return []user.User{
				{ID: uuid.New(), Name: "Meena Iyer", Role: domain.RoleStaff, Department: department},
			}, nil
		}

		resp, err := deps.service.ListApprovers(ctx, domain.RoleStudent, domain.DepartmentCSE)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, domain.RoleStaff, resp[0].Role)
	})

	t.Run("unknown department", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ListApprovers(ctx, domain.RoleStudent, "ARTS")

		assert.ErrorIs(t, err, usererrors.ErrInvalidDepartment)
	})

	t.Run("unknown requester role", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ListApprovers(ctx, "VISITOR", domain.DepartmentCSE)

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("role filter passed through", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllPagedFn = func(ctx context.Context, role string, page, limit int) ([]user.User, int64, error) {
			assert.Equal(t, domain.RoleHOD, role)
			return []user.User{{ID: uuid.New(), Role: domain.RoleHOD}}, 1, nil
		}

		resp, total, err := deps.service.GetAll(ctx, domain.RoleHOD, 1, 10)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, resp, 1)
	})

	t.Run("bad role filter", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.GetAll(ctx, "JANITOR", 1, 10)

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})
}

func TestUserService_UpdateDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("update missing user", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, uuid.NewString(), user.UpdateUserRequest{
			Name:       "New Name",
			Role:       domain.RoleStaff,
			Department: domain.DepartmentCSE,
		})

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("delete missing user", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Delete(ctx, uuid.NewString())

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}
