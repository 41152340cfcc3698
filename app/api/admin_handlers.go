package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// GetDashboard aggregates severity breakdowns across every source table.
// The payload is cached with a short TTL; it backs the landing page and is
// hit far more often than the data changes.
func (h *Handler) GetDashboard(c *gin.Context) {
	if cached, ok := h.cache.Get("dashboard"); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	sections := []struct {
		name  string
		count func() (map[string]int, error)
	}{
		{"detections", h.detectionRepo.CountBySeverity},
		{"findings", h.findingRepo.CountBySeverity},
		{"advisories", h.advisoryRepo.CountBySeverity},
		{"scorecard_issues", h.scorecardRepo.CountIssuesBySeverity},
		{"feed_items", h.itemRepo.CountBySeverity},
	}

	bySeverity := gin.H{}
	for _, section := range sections {
		counts, err := section.count()
		if err != nil {
			slog.Error("Database error", "operation", "dashboard_counts", "section", section.name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		bySeverity[section.name] = counts
	}

	dashboard := gin.H{"by_severity": bySeverity}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		dashboard["feeds"] = feedCount
	}
	if itemCount, err := h.itemRepo.GetItemCount(); err == nil {
		dashboard["items"] = itemCount
	}

	h.cache.Set("dashboard", dashboard)
	c.JSON(http.StatusOK, dashboard)
}

type cleanupRequest struct {
	Target string `json:"target" binding:"required"`
}

// Cleanup wipes one source table, or every security table at once. The
// all_security deletes are independent, so they run concurrently.
func (h *Handler) Cleanup(c *gin.Context) {
	var req cleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	deletes := map[string]func() error{
		"detections":        h.detectionRepo.DeleteAll,
		"findings":          h.findingRepo.DeleteAll,
		"advisories":        h.advisoryRepo.DeleteAll,
		"scorecard_issues":  h.scorecardRepo.DeleteAllIssues,
		"scorecard_ratings": h.scorecardRepo.DeleteAllRatings,
		"feed_items":        h.itemRepo.DeleteAll,
	}

	var targets []string
	if req.Target == "all_security" {
		targets = []string{"detections", "findings", "advisories", "scorecard_issues", "scorecard_ratings"}
	} else if _, ok := deletes[req.Target]; ok {
		targets = []string{req.Target}
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown cleanup target: " + req.Target})
		return
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		cleared  []string
		failures []string
	)

	for _, target := range targets {
		wg.Add(1)
		go func(name string, deleteAll func() error) {
			defer wg.Done()

			if err := deleteAll(); err != nil {
				slog.Error("Cleanup failed", "target", name, "error", err)
				mu.Lock()
				failures = append(failures, name+": "+err.Error())
				mu.Unlock()
				return
			}

			mu.Lock()
			cleared = append(cleared, name)
			mu.Unlock()
		}(target, deletes[target])
	}
	wg.Wait()

	slog.Info("Cleanup completed", "target", req.Target, "cleared", len(cleared), "failures", len(failures))

	status := http.StatusOK
	if len(failures) > 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{
		"success":  len(failures) == 0,
		"cleared":  cleared,
		"failures": failures,
	})
}
