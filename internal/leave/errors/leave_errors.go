package leaveerrors

import (
	"net/http"

	"github.com/fmcmkdict/LMA-App/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrDuplicateActiveRequest = apperror.New(
		apperror.CodeConflict,
		"you already have a pending or approved leave request",
		http.StatusConflict,
	)
	ErrDuplicateTypeThisYear = apperror.New(
		apperror.CodeConflict,
		"this leave type has already been taken this year",
		http.StatusConflict,
	)
	ErrInvalidStateTransition = apperror.New(
		apperror.CodeInvalidState,
		"the leave request is not in a state that allows this operation",
		http.StatusBadRequest,
	)
	ErrAlreadyRecommended = apperror.New(
		apperror.CodeConflict,
		"the leave request has already been recommended",
		http.StatusConflict,
	)
	ErrNotRecommended = apperror.New(
		apperror.CodeInvalidState,
		"the leave request must be recommended before a decision",
		http.StatusBadRequest,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"the leave request has already been decided",
		http.StatusConflict,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the owner may modify this leave request",
		http.StatusForbidden,
	)
	ErrEditNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be edited",
		http.StatusBadRequest,
	)
)
