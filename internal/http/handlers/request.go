package handlers

import (
	"strings"
	"time"

	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/http/response"
	"github.com/naseej-app/internal/service"
	"github.com/naseej-app/internal/workflow"

	"github.com/gin-gonic/gin"
)

// CreateRequestLine is one line item of the intake payload.
type CreateRequestLine struct {
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// CreateRequestRequest is the intake payload.
type CreateRequestRequest struct {
	Items          []CreateRequestLine `json:"items" binding:"required,min=1"`
	Notes          string              `json:"notes"`
	TotalQty       int                 `json:"total_qty" binding:"required,min=1"`
	Deadline       string              `json:"deadline" binding:"required"`
	InboundOption  string              `json:"inbound_option" binding:"required"`
	OutboundOption string              `json:"outbound_option" binding:"required"`
}

// CreateRequest files a new pickup request for the caller's store.
func (h *Handler) CreateRequest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		response.BadRequest(c, "deadline must be an RFC3339 timestamp or YYYY-MM-DD date")
		return
	}

	items := make([]service.CreateRequestItem, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, service.CreateRequestItem{
			Quantity:    line.Quantity,
			Description: line.Description,
		})
	}
	request, err := h.RequestService.CreateRequest(service.CreateRequestInput{
		UserID:         actor.UserID,
		Items:          items,
		Notes:          req.Notes,
		TotalQty:       req.TotalQty,
		Deadline:       deadline,
		InboundOption:  req.InboundOption,
		OutboundOption: req.OutboundOption,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, gin.H{
		"request_id": request.ID,
		"order_no":   request.OrderNo,
		"status":     request.Status,
	})
}

// ListRequests returns requests visible to the caller's role.
func (h *Handler) ListRequests(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	requests, err := h.RequestService.ListRequests(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, requests)
}

// GetRequest returns one request with items and history.
func (h *Handler) GetRequest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	request, err := h.RequestService.GetRequest(id, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, request)
}

// RequestHistory returns the order-history view with joined
// rejection/cancellation reasons.
func (h *Handler) RequestHistory(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	rows, err := h.RequestService.OrderHistory(actor,
		strings.TrimSpace(c.Query("status")),
		strings.TrimSpace(c.Query("search")),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, rows)
}

// transitionNote is the optional body of every transition endpoint.
type transitionNote struct {
	Note string `json:"note"`
}

func (h *Handler) advance(c *gin.Context, ev workflow.Event) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body transitionNote
	_ = c.ShouldBindJSON(&body)

	newStatus, err := h.RequestService.AdvanceRequest(id, ev, actor.UserID, body.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"status": newStatus})
}

// ApproveRequest moves a pending request forward.
func (h *Handler) ApproveRequest(c *gin.Context) { h.advance(c, workflow.EventApprove) }

// RejectRequest declines a pending request.
func (h *Handler) RejectRequest(c *gin.Context) { h.advance(c, workflow.EventReject) }

// PrepareRequest starts working the order.
func (h *Handler) PrepareRequest(c *gin.Context) { h.advance(c, workflow.EventStartPreparing) }

// ReadyRequest marks the order ready for pickup.
func (h *Handler) ReadyRequest(c *gin.Context) { h.advance(c, workflow.EventMarkReady) }

// DispatchRequest sends a driver out.
func (h *Handler) DispatchRequest(c *gin.Context) { h.advance(c, workflow.EventDispatchDriver) }

// DeliverRequest marks the order out for delivery.
func (h *Handler) DeliverRequest(c *gin.Context) { h.advance(c, workflow.EventStartDelivery) }

// CompleteRequest closes the order.
func (h *Handler) CompleteRequest(c *gin.Context) { h.advance(c, workflow.EventComplete) }

// CancelRequest cancels a non-terminal request. Customers may only cancel
// their own.
func (h *Handler) CancelRequest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if actor.Role == constants.RoleCustomer {
		owner, err := h.RequestService.IsOwner(id, actor)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if !owner {
			response.Forbidden(c, "operation not permitted")
			return
		}
	}
	var body transitionNote
	_ = c.ShouldBindJSON(&body)

	newStatus, err := h.RequestService.AdvanceRequest(id, workflow.EventCancel, actor.UserID, body.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"status": newStatus})
}

// UpdateRequestNotesRequest is the notes-edit payload.
type UpdateRequestNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateRequestNotes edits a request's free-text notes.
func (h *Handler) UpdateRequestNotes(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateRequestNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.RequestService.UpdateNotes(id, actor, req.Notes); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "notes updated", nil)
}

func parseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
