package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"notes_api/internal/models"
	"notes_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	currentUserKey  = "currentUser"
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
)

// userIdentity resolves the bearer token to a stored user. Every
// authentication failure is reported as 403, matching the public API.
func (h *Handler) userIdentity(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		abortWithDetail(c, http.StatusForbidden, msgNotAuthenticated)
		return
	}

	user, err := h.services.ResolveUser(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			if h.log != nil {
				h.log.Infow("auth_token_rejected", "err", err, "request_id", c.GetString(requestIDKey))
			}
			abortWithDetail(c, http.StatusForbidden, msgCouldNotValidate)
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, msgInternal, "auth_resolve_failed", err)
		c.Abort()
		return
	}

	// store in Gin context
	c.Set(currentUserKey, user)
	c.Next()
}

// bearerToken extracts the credentials from "Bearer <token>"; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// userHandler is a route handler that receives the authenticated caller explicitly.
type userHandler func(c *gin.Context, user *models.User)

func (h *Handler) withUser(next userHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(currentUserKey)
		user, _ := v.(*models.User)
		if !ok || user == nil {
			abortWithDetail(c, http.StatusForbidden, msgNotAuthenticated)
			return
		}
		next(c, user)
	}
}

// requestLogger tags the request with an id and logs it once it completes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()

	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Set(requestIDKey, reqID)
	c.Header(requestIDHeader, reqID)

	c.Next()

	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
