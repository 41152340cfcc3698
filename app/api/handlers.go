package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/rules"
	"github.com/secboard/secboard/app/sources"
	"github.com/secboard/secboard/app/tasks"
)

const cacheTTL = 60 * time.Second

func NewHandler(logRepo database.IngestionLogRepository, detectionRepo database.DetectionRepository,
	findingRepo database.FindingRepository, advisoryRepo database.AdvisoryRepository,
	scorecardRepo database.ScorecardRepository, feedRepo database.FeedRepository,
	itemRepo database.ItemRepository, rs *rules.Set, scheduler tasks.TaskSchedulerInterface) *Handler {

	importers := map[string]ImporterInterface{
		"falcon":            sources.NewFalconImporter(logRepo, detectionRepo, rs),
		"securityhub":       sources.NewSecurityHubImporter(logRepo, findingRepo, rs),
		"advisories":        sources.NewAdvisoryImporter(logRepo, advisoryRepo, rs),
		"scorecard-issues":  sources.NewScorecardIssueImporter(logRepo, scorecardRepo, rs),
		"scorecard-ratings": sources.NewScorecardRatingImporter(logRepo, scorecardRepo, rs),
		"generic":           sources.NewGenericImporter(logRepo, detectionRepo, findingRepo, advisoryRepo, scorecardRepo, rs),
	}

	return &Handler{
		logRepo:       logRepo,
		detectionRepo: detectionRepo,
		findingRepo:   findingRepo,
		advisoryRepo:  advisoryRepo,
		scorecardRepo: scorecardRepo,
		feedRepo:      feedRepo,
		itemRepo:      itemRepo,
		importers:     importers,
		scheduler:     scheduler,
		cache:         newResponseCache(cacheTTL),
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		health["feeds"] = feedCount
	}
	if itemCount, err := h.itemRepo.GetItemCount(); err == nil {
		health["items"] = itemCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	if cached, ok := h.cache.Get("stats"); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	stats := gin.H{}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		stats["feeds"] = feedCount
	}
	if itemCount, err := h.itemRepo.GetItemCount(); err == nil {
		stats["items"] = itemCount
	}
	if counts, err := h.itemRepo.CountBySeverity(); err == nil {
		stats["items_by_severity"] = counts
	}

	h.cache.Set("stats", stats)
	c.JSON(http.StatusOK, stats)
}
