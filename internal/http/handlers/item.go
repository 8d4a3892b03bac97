package handlers

import (
	"strconv"
	"strings"

	"github.com/naseej-app/internal/http/response"
	"github.com/naseej-app/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListItems returns items matching the conjunctive query filter.
func (h *Handler) ListItems(c *gin.Context) {
	filter := repository.ItemListFilter{
		Status: strings.TrimSpace(c.Query("status")),
	}
	if id, ok := parseQueryID(c, "worker_id"); ok {
		filter.WorkerID = &id
	}
	if id, ok := parseQueryID(c, "driver_id"); ok {
		filter.DriverID = &id
	}
	if id, ok := parseQueryID(c, "request_id"); ok {
		filter.RequestID = &id
	}
	items, err := h.ItemService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetItem returns one item with its status history.
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, history, err := h.ItemService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"item":    item,
		"history": history,
	})
}

// UpdateItemStatusRequest is the status-change payload.
type UpdateItemStatusRequest struct {
	ToStatus string `json:"to_status" binding:"required"`
	Note     string `json:"note"`
}

// UpdateItemStatus moves one item to a new status.
func (h *Handler) UpdateItemStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.ItemService.UpdateStatus(id, req.ToStatus, actor.UserID, req.Note); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "status updated", nil)
}

// AssignItemRequest is the assignment payload; at least one reference must
// be supplied.
type AssignItemRequest struct {
	WorkerID *uint `json:"worker_id"`
	DriverID *uint `json:"driver_id"`
}

// AssignItem sets the worker and/or driver of an item.
func (h *Handler) AssignItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AssignItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.ItemService.Assign(id, req.WorkerID, req.DriverID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "assignment updated", nil)
}

func parseQueryID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, false
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(parsed), true
}
