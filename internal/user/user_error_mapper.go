package user

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	usererrors "github.com/alok-mishra143/leave-management-backend/internal/user/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_users_email":
				return usererrors.ErrEmailAlreadyRegistered
			case "uq_leave_balances_user_year":
				return usererrors.ErrBalanceAlreadyProvisioned
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_email") {
		return usererrors.ErrEmailAlreadyRegistered
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_balances_user_year") {
		return usererrors.ErrBalanceAlreadyProvisioned
	}

	return err
}
