package v1

import (
	"errors"
	"net/http"

	"github.com/pkoka888/budget-control/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Auth errors
var (
	errLoginInvalid     = errors.New("the username or password is incorrect")
	errLoginRateLimited = errors.New("too many failed login attempts, try again later")
)

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)

// Report errors
var (
	errMonthNotSetInQuery = errors.New("the month query parameter must be set")
	errYearInvalid        = errors.New("the year query parameter must be a valid year")
	errRangeNotSetInQuery = errors.New("the from and until query parameters must be set to months")
)
