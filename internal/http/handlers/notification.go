package handlers

import (
	"strconv"
	"strings"

	"github.com/naseej-app/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListNotifications returns the caller's newest notifications.
func (h *Handler) ListNotifications(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	notifications, err := h.NotificationService.List(actor.UserID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, notifications)
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.NotificationService.MarkRead(id, actor.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "notification read", nil)
}
