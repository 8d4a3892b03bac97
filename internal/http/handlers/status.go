package handlers

import (
	"github.com/naseej-app/internal/http/response"
	"github.com/naseej-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ListStatuses returns the registry in display order.
func (h *Handler) ListStatuses(c *gin.Context) {
	statuses, err := h.StatusService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, statuses)
}

// StatusRequest is the create/update payload.
type StatusRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	DisplayOrder int    `json:"display_order"`
}

// CreateStatus adds a registry entry.
func (h *Handler) CreateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	status, err := h.StatusService.Create(service.StatusInput{
		Name:         req.Name,
		Description:  req.Description,
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, status)
}

// UpdateStatus edits a registry entry.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	status, err := h.StatusService.Update(id, service.StatusInput{
		Name:         req.Name,
		Description:  req.Description,
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, status)
}

// DeleteStatus removes a registry entry not referenced by any item.
func (h *Handler) DeleteStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.StatusService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "status deleted", nil)
}

// ReorderStatusesRequest is the bulk reorder payload.
type ReorderStatusesRequest struct {
	Entries []service.ReorderEntry `json:"entries" binding:"required,min=1"`
}

// ReorderStatuses applies a full new display ordering.
func (h *Handler) ReorderStatuses(c *gin.Context) {
	var req ReorderStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.StatusService.Reorder(req.Entries); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "statuses reordered", nil)
}
