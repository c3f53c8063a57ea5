package user

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/alok-mishra143/leave-management-backend/internal/leave"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, u *User) error
	CreateBalance(ctx context.Context, b *leave.LeaveBalance) error

	FindByID(ctx context.Context, id string) (*User, error)
	FindAllPaged(ctx context.Context, role string, page, limit int) ([]User, int64, error)
	FindApprovers(ctx context.Context, department string, roles []string) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Create goes through raw SQL so it can share a *sql.Tx with the balance
// insert; gorm sessions cannot join that transaction.
func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
INSERT INTO users (
	id, name, email, password, role, department, gender, phone, address, image, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		u.ID, u.Name, u.Email, u.Password, u.Role, u.Department,
		u.Gender, u.Phone, u.Address, u.Image,
	)
	return err
}

func (r *repository) CreateBalance(ctx context.Context, b *leave.LeaveBalance) error {
	query := `
INSERT INTO leave_balances (
	id, user_id, academic_year, total_leaves, used_leaves, available_leave, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		b.ID, b.UserID, b.AcademicYear, b.TotalLeaves, b.UsedLeaves, b.AvailableLeave,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindAllPaged(ctx context.Context, role string, page, limit int) ([]User, int64, error) {
	q := r.db.WithContext(ctx).Model(&User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *repository) FindApprovers(ctx context.Context, department string, roles []string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Where("role IN ?", roles).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, err := r.db.DB()
	if err == nil {
		return sqlDB
	}
	return noExecer{err: err}
}

type noExecer struct{ err error }

func (n noExecer) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, n.err
}
