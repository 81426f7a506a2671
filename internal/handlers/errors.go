package handlers

import (
	"errors"
	"net/http"

	"notes_api/internal/service"

	"github.com/gin-gonic/gin"
)

// Fixed client-facing messages.
const (
	msgEmailRegistered     = "Email already registered"
	msgIncorrectCredential = "Incorrect email or password"
	msgNotAuthenticated    = "Not authenticated"
	msgCouldNotValidate    = "Could not validate credentials"
	msgNoteNotFound        = "Note not found"
	msgInvalidBody         = "Invalid request body"
	msgInvalidNoteID       = "Invalid note id"
	msgInternal            = "Internal server error"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail string `json:"detail" example:"Note not found"`
}

func abortWithDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, errorResponse{Detail: detail})
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, errorResponse{Detail: userMsg})
}

// respondError maps a service error to its status and fixed message. Anything
// unrecognised is logged under logKey and reported as a 500.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	var (
		verr *service.ValidationError
		ferr *service.ForbiddenError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Detail: verr.Error()})
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		c.JSON(http.StatusBadRequest, errorResponse{Detail: msgEmailRegistered})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Detail: msgIncorrectCredential})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusForbidden, errorResponse{Detail: msgCouldNotValidate})
	case errors.Is(err, service.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Detail: msgNoteNotFound})
	case errors.As(err, &ferr):
		c.JSON(http.StatusForbidden, errorResponse{Detail: ferr.Action.Message()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, msgInternal, logKey, err, kv...)
	}
}
