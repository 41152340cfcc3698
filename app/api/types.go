package api

import (
	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/ingest"
	"github.com/secboard/secboard/app/sources"
	"github.com/secboard/secboard/app/tasks"
)

// ImporterInterface is one CSV importer bound to its target table.
type ImporterInterface interface {
	Import(content []byte, filename string) (*ingest.Summary, error)
}

var _ ImporterInterface = (*sources.FalconImporter)(nil)
var _ ImporterInterface = (*sources.SecurityHubImporter)(nil)
var _ ImporterInterface = (*sources.AdvisoryImporter)(nil)
var _ ImporterInterface = (*sources.ScorecardIssueImporter)(nil)
var _ ImporterInterface = (*sources.ScorecardRatingImporter)(nil)
var _ ImporterInterface = (*sources.GenericImporter)(nil)

type Handler struct {
	logRepo       database.IngestionLogRepository
	detectionRepo database.DetectionRepository
	findingRepo   database.FindingRepository
	advisoryRepo  database.AdvisoryRepository
	scorecardRepo database.ScorecardRepository
	feedRepo      database.FeedRepository
	itemRepo      database.ItemRepository
	importers     map[string]ImporterInterface
	scheduler     tasks.TaskSchedulerInterface
	cache         *responseCache
}
