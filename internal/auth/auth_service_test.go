package auth_test

import (
	"context"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alok-mishra143/leave-management-backend/internal/auth"
	autherrors "github.com/alok-mishra143/leave-management-backend/internal/auth/errors"
	"github.com/alok-mishra143/leave-management-backend/internal/domain"
)

type fakeAuthRepository struct {
	getByEmailFn func(ctx context.Context, email string) (*auth.Account, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.Account, error)
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func testAccount(t *testing.T, password string) *auth.Account {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.Account{
		ID:         uuid.New(),
		Name:       "Meena Iyer",
		Email:      "meena.iyer@campus.edu",
		Password:   string(hashed),
		Role:       domain.RoleStaff,
		Department: domain.DepartmentCSE,
	}
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	ctx := context.Background()
	account := testAccount(t, "correct-horse")

	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.Account, error) {
			if email == account.Email {
				return account, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := auth.NewService(repo)

	t.Run("success issues tokens with role claims", func(t *testing.T) {
		access, refresh, resp, err := svc.Login(ctx, account.Email, "correct-horse")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, account.ID.String(), resp.ID)
		assert.Equal(t, domain.RoleStaff, resp.Role)

		claims := parseClaims(t, access)
		assert.Equal(t, account.ID.String(), claims["user_id"])
		assert.Equal(t, domain.RoleStaff, claims["role"])
		assert.Equal(t, domain.DepartmentCSE, claims["department"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, account.Email, "wrong-password")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "nobody@campus.edu", "correct-horse")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	ctx := context.Background()
	account := testAccount(t, "correct-horse")

	repo := &fakeAuthRepository{
		getByEmailFn: func(ctx context.Context, email string) (*auth.Account, error) {
			return account, nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
			if id == account.ID {
				return account, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := auth.NewService(repo)

	t.Run("refresh reflects current role", func(t *testing.T) {
		_, refresh, _, err := svc.Login(ctx, account.Email, "correct-horse")
		assert.NoError(t, err)

		// promote between login and refresh
		account.Role = domain.RoleHOD

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, domain.RoleHOD, resp.Role)

		claims := parseClaims(t, newAccess)
		assert.Equal(t, domain.RoleHOD, claims["role"])
	})

	t.Run("garbage token", func(t *testing.T) {
		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	ctx := context.Background()
	account := testAccount(t, "correct-horse")

	repo := &fakeAuthRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
			if id == account.ID {
				return account, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := auth.NewService(repo)

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetMe(ctx, account.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, account.Email, resp.Email)
	})

	t.Run("bad id", func(t *testing.T) {
		_, err := svc.GetMe(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.GetMe(ctx, uuid.NewString())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
