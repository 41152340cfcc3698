package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createFeedRequest struct {
	Name     string `json:"name" binding:"required"`
	URL      string `json:"url" binding:"required,url"`
	Category string `json:"category"`
}

func (h *Handler) CreateFeed(c *gin.Context) {
	var req createFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	existing, err := h.feedRepo.GetByURL(req.URL)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed_by_url", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A feed with this URL is already registered", "id": existing.ID})
		return
	}

	id, err := h.feedRepo.Create(req.Name, req.URL, req.Category)
	if err != nil {
		slog.Error("Database error", "operation", "create_feed", "name", req.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	slog.Info("Feed registered", "id", id, "name", req.Name, "url", req.URL)

	c.JSON(http.StatusCreated, gin.H{
		"id":       id,
		"name":     req.Name,
		"url":      req.URL,
		"category": req.Category,
	})
}

func (h *Handler) ListFeeds(c *gin.Context) {
	feeds, err := h.feedRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "list_feeds", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	list := make([]gin.H, 0, len(feeds))
	for _, feed := range feeds {
		list = append(list, gin.H{
			"id":              feed.ID,
			"name":            feed.Name,
			"url":             feed.URL,
			"category":        feed.Category,
			"enabled":         feed.Enabled,
			"last_fetched_at": feed.LastFetchedAt,
			"next_fetch_at":   feed.NextFetchAt,
			"fetch_error":     feed.FetchError,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"feeds": list,
		"total": len(list),
	})
}

func (h *Handler) GetFeed(c *gin.Context) {
	id := c.Param("id")

	feed, err := h.feedRepo.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if feed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}

	c.JSON(http.StatusOK, feed)
}

type updateFeedRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (h *Handler) UpdateFeed(c *gin.Context) {
	id := c.Param("id")

	var req updateFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	feed, err := h.feedRepo.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if feed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}

	if err := h.feedRepo.SetEnabled(id, *req.Enabled); err != nil {
		slog.Error("Database error", "operation", "set_feed_enabled", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"enabled": *req.Enabled,
	})
}

func (h *Handler) RefreshFeed(c *gin.Context) {
	id := c.Param("id")

	feed, err := h.feedRepo.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if feed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed not found"})
		return
	}
	if !feed.Enabled {
		c.JSON(http.StatusConflict, gin.H{"error": "Feed is disabled"})
		return
	}

	if err := h.scheduler.EnqueueFeedRefresh(*feed); err != nil {
		slog.Error("Failed to enqueue feed refresh", "id", id, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to enqueue refresh: " + err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"feed":    feed.Name,
	})
}

func (h *Handler) RefreshAllFeeds(c *gin.Context) {
	enqueued, err := h.scheduler.EnqueueAllFeedsRefresh()
	if err != nil {
		slog.Error("Failed to enqueue feed refreshes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue refreshes"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success":  true,
		"enqueued": enqueued,
	})
}
