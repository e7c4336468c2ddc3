package balanceerrors

import (
	"fmt"
	"net/http"

	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
)

var (
	// ErrInsufficientBalance is the match target for errors.Is. Callers
	// that need the remaining figure should use InsufficientBalance.
	ErrInsufficientBalance = apperror.New(
		apperror.CodeUnprocessable,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrVersionConflict = apperror.New(
		apperror.CodeConflict,
		"balance was modified concurrently",
		http.StatusConflict,
	)
)

// InsufficientBalance reports how many days the employee has left so the
// client can show it without a second request.
func InsufficientBalance(remaining int) *apperror.AppError {
	return apperror.Wrap(
		ErrInsufficientBalance,
		apperror.CodeUnprocessable,
		fmt.Sprintf("insufficient leave balance: %d day(s) remaining", remaining),
		http.StatusUnprocessableEntity,
	).WithDetails(map[string]int{"days_remaining": remaining})
}
