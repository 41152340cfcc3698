package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListItems(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 50, 200)
	severity := c.Query("severity")

	items, err := h.itemRepo.GetRecent(limit, severity)
	if err != nil {
		slog.Error("Database error", "operation", "list_items", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

type flagRequest struct {
	Value *bool `json:"value"`
}

// flagValue reads the optional request body for the read/bookmark toggles.
// An empty body means "set the flag".
func flagValue(c *gin.Context) (bool, bool) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		return false, false
	}
	if req.Value == nil {
		return true, true
	}
	return *req.Value, true
}

func (h *Handler) SetItemRead(c *gin.Context) {
	id := c.Param("id")

	value, ok := flagValue(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.itemRepo.SetRead(id, value); err != nil {
		slog.Error("Database error", "operation", "set_item_read", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "is_read": value})
}

func (h *Handler) SetItemBookmarked(c *gin.Context) {
	id := c.Param("id")

	value, ok := flagValue(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.itemRepo.SetBookmarked(id, value); err != nil {
		slog.Error("Database error", "operation", "set_item_bookmarked", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "is_bookmarked": value})
}
