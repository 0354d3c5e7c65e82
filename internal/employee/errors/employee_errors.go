package employeeerrors

import (
	"employee-api/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidReference = apperror.New(
		apperror.CodeConflict,
		"Department or project does not exist",
		http.StatusConflict,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee violates a uniqueness constraint",
		http.StatusConflict,
	)
	ErrStoreUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Employee store is unavailable",
		http.StatusInternalServerError,
	)
)
