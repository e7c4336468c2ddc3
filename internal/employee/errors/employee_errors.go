package employeeerrors

import (
	"net/http"

	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateUsername = apperror.New(
		apperror.CodeConflict,
		"username is already taken",
		http.StatusConflict,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrUnitNotFound = apperror.New(
		apperror.CodeNotFound,
		"unit not found",
		http.StatusNotFound,
	)
	ErrStatusUnchanged = apperror.New(
		apperror.CodeConflict,
		"account is already in the requested status",
		http.StatusConflict,
	)
)
