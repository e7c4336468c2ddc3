package calendarerrors

import (
	"net/http"

	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrNegativeDays = apperror.New(
		apperror.CodeInvalidInput,
		"working day count must not be negative",
		http.StatusBadRequest,
	)
	ErrSpanTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"date span exceeds the maximum of 366 days",
		http.StatusBadRequest,
	)
	ErrDuplicateHoliday = apperror.New(
		apperror.CodeConflict,
		"a holiday already exists on this date",
		http.StatusConflict,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
)
