package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, academicYear string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, academicYear string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT and increment so concurrent requests within the same
	// academic year never draw the same sequence number.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO academic_counters (academic_year, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (academic_year, counter_type) DO UPDATE
		SET last_value = academic_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, academicYear, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
