package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"task-api/internal/store"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// abortStoreError maps store error kinds onto HTTP responses. A
// malformed id is reported as 404, indistinguishable from an absent
// task. Anything unanticipated falls through to a generic 500.
func (h *handlerImpl) abortStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrInvalidTaskID):
		abort(c, newNotFoundError(store.ErrTaskNotFound.Error()))
	case errors.Is(err, store.ErrEmptyTaskTitle):
		abort(c, newBadRequestError(err.Error()))
	case errors.Is(err, store.ErrStoreUnavailable):
		abort(c, newAPIError(http.StatusInternalServerError, err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
