package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/alok-mishra143/leave-management-backend/internal/domain"
	"github.com/alok-mishra143/leave-management-backend/internal/leave"
	"github.com/alok-mishra143/leave-management-backend/internal/shared/contextutil"
	usererrors "github.com/alok-mishra143/leave-management-backend/internal/user/errors"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	RegisterStudent(ctx context.Context, req RegisterStudentRequest) (UserResponse, error)
	GetAll(ctx context.Context, role string, page, limit int) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	ListApprovers(ctx context.Context, requesterRole, department string) ([]UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	return s.createWithRole(ctx, req, req.Role)
}

func (s *service) RegisterStudent(ctx context.Context, req RegisterStudentRequest) (UserResponse, error) {
	return s.createWithRole(ctx, CreateUserRequest{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Gender:     req.Gender,
		Phone:      req.Phone,
		Address:    req.Address,
	}, domain.RoleStudent)
}

// createWithRole persists the account and provisions the academic-year
// leave balance in the same transaction; a user without a balance row
// cannot have leave decided.
func (s *service) createWithRole(ctx context.Context, req CreateUserRequest, role string) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create user requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", role),
	)

	if !domain.IsValidRole(role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	if !domain.IsValidDepartment(req.Department) {
		return UserResponse{}, usererrors.ErrInvalidDepartment
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u := &User{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       role,
		Department: req.Department,
		Gender:     req.Gender,
		Phone:      req.Phone,
		Address:    req.Address,
		Image:      req.Image,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	balance := leave.NewBalance(u.ID, leave.CurrentAcademicYear(time.Now()))
	if err := qtx.CreateBalance(ctx, balance); err != nil {
		s.logger.Error("create user balance persist failed",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}

	u.CreatedAt = time.Now().UTC()
	s.logger.Info("create user success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
		zap.String("role", role),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, role string, page, limit int) ([]UserResponse, int64, error) {
	if role != "" && !domain.IsValidRole(role) {
		return nil, 0, usererrors.ErrInvalidRole
	}

	users, total, err := s.repo.FindAllPaged(ctx, role, page, limit)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(users), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

// ListApprovers returns the users in a department who may receive leave
// requests from the given requester role, per the routing table.
func (s *service) ListApprovers(ctx context.Context, requesterRole, department string) ([]UserResponse, error) {
	if !domain.IsValidDepartment(department) {
		return nil, usererrors.ErrInvalidDepartment
	}

	roles := leave.DefaultRouting[requesterRole]
	if len(roles) == 0 {
		return nil, usererrors.ErrInvalidRole
	}

	users, err := s.repo.FindApprovers(ctx, department, roles)
	if err != nil {
		s.logger.Error("list approvers failed",
			zap.String("department", department),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(users), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	s.logger.Debug("update user requested", zap.String("user_id", id))

	if !domain.IsValidRole(req.Role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	if !domain.IsValidDepartment(req.Department) {
		return UserResponse{}, usererrors.ErrInvalidDepartment
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Name = req.Name
	u.Role = req.Role
	u.Department = req.Department
	u.Gender = req.Gender
	u.Phone = req.Phone
	u.Address = req.Address
	u.Image = req.Image

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update user success", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete user requested", zap.String("user_id", id))

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete user failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete user success", zap.String("user_id", id))
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		Gender:     u.Gender,
		Phone:      u.Phone,
		Address:    u.Address,
		Image:      u.Image,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, mapToResponse(u))
	}
	return resp
}
