package tasks

import (
	"github.com/secboard/secboard/app/database"
)

// TaskSchedulerInterface is consumed by main and by the API layer, which
// triggers on-demand feed refreshes.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	EnqueueFeedRefresh(feed database.Feed) error
	EnqueueAllFeedsRefresh() (int, error)
}
