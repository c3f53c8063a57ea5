package leave

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAllPaged(ctx context.Context, status *Status, page, limit int) ([]LeaveRequest, int64, error)
	FindByUserPaged(ctx context.Context, userID string, page, limit int) ([]LeaveRequest, int64, error)
	FindApproved(ctx context.Context) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id string) error

	FindUserRole(ctx context.Context, userID string) (string, error)

	GetBalanceByUser(ctx context.Context, userID, academicYear string) (*LeaveBalance, error)
	CreateBalance(ctx context.Context, b *LeaveBalance) error

	ApplyDecision(ctx context.Context, id string, expected Status, d Decision) (bool, error)
	AdjustBalance(ctx context.Context, balanceID string, delta decimal.Decimal) error
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllPaged(ctx context.Context, status *Status, page, limit int) ([]LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []LeaveRequest
	err := q.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindByUserPaged(ctx context.Context, userID string, page, limit int) ([]LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&LeaveRequest{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []LeaveRequest
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindApproved(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", StatusApproved).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveRequest{}, "id = ?", id).Error
}

func (r *repository) FindUserRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := r.db.WithContext(ctx).
		Table("users").
		Select("role").
		Where("id = ?", userID).
		Where("deleted_at IS NULL").
		Take(&role).Error
	return role, err
}

func (r *repository) GetBalanceByUser(ctx context.Context, userID, academicYear string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("academic_year = ?", academicYear).
		First(&b).Error
	return &b, err
}

func (r *repository) CreateBalance(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// ApplyDecision writes the decision as a compare-and-swap on the expected
// current status. Returns false when zero rows matched, i.e. another
// decision got there first and the caller's delta is stale.
func (r *repository) ApplyDecision(ctx context.Context, id string, expected Status, d Decision) (bool, error) {
	query := `
UPDATE leave_requests
SET
	status = $2,
	approved_by = $3,
	decided_at = NOW(),
	updated_at = NOW()
WHERE id = $1
	AND status = $4
	AND deleted_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, id, string(d.NewStatus), d.ApprovedBy.String(), string(expected))
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// AdjustBalance applies the signed delta: a negative delta consumes leave,
// a positive one hands it back. used_leaves moves opposite to the pool.
func (r *repository) AdjustBalance(ctx context.Context, balanceID string, delta decimal.Decimal) error {
	query := `
UPDATE leave_balances
SET
	available_leave = available_leave + $2,
	used_leaves = used_leaves - $2,
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, balanceID, delta)
	return err
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
