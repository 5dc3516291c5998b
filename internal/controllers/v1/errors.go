package v1

import (
	"errors"
	"net/http"

	"github.com/easyfinances/backend/internal/auth"
	"github.com/easyfinances/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrCategoryInUse):
		return http.StatusConflict
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

var (
	errTypeInvalid   = errors.New("the type parameter must be one of 'income' or 'expense'")
	errLimitInvalid  = errors.New("the limit parameter must not be negative")
	errUsernameEmpty = errors.New("the username must not be empty")
	errGoalType      = errors.New("the goalType parameter must be one of 'spending_limit' or 'saving_goal'")
)
