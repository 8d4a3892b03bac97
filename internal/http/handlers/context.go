package handlers

import (
	"strconv"
	"strings"

	"github.com/naseej-app/internal/http/response"
	"github.com/naseej-app/internal/logger"
	"github.com/naseej-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyUserEmail = "user_email"
	ContextKeyRequestID = "request_id"
)

// requestLog returns a logger carrying the request id.
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// currentActor reads the authenticated user id and role from the context.
// A missing identity writes the 401 response and reports false.
func currentActor(c *gin.Context) (service.Actor, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		response.Unauthorized(c, "authentication required")
		return service.Actor{}, false
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		response.Unauthorized(c, "authentication required")
		return service.Actor{}, false
	}
	role := ""
	if v, ok := c.Get(ContextKeyUserRole); ok {
		role, _ = v.(string)
	}
	return service.Actor{UserID: userID, Role: strings.ToLower(role)}, true
}

// pathID parses a :id path parameter. Zero and garbage both write the 400
// response and report false.
func pathID(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(parsed), true
}
