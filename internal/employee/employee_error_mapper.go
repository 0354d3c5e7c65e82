package employee

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	employeeerrors "employee-api/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return employeeerrors.ErrInvalidReference.WithCause(err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return employeeerrors.ErrEmployeeAlreadyExists.WithCause(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return employeeerrors.ErrInvalidReference.WithCause(err)
		case pgUniqueViolation:
			return employeeerrors.ErrEmployeeAlreadyExists.WithCause(err)
		}
	}

	if isConnectivityError(err) {
		return employeeerrors.ErrStoreUnavailable.WithCause(err)
	}

	return err
}

func isConnectivityError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
