package handlers

import (
	"strings"
	"time"

	"github.com/naseej-app/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DashboardOverview serves the reporting aggregate. The window defaults to
// the last month when from/to are absent.
func (h *Handler) DashboardOverview(c *gin.Context) {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		response.BadRequest(c, "from must be an RFC3339 timestamp or YYYY-MM-DD date")
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		response.BadRequest(c, "to must be an RFC3339 timestamp or YYYY-MM-DD date")
		return
	}
	overview, err := h.DashboardService.Overview(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, overview)
}

func parseTimeQuery(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
