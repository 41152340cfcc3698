package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/secboard/secboard/app/cfg"
	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/rss"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// How many due feeds one scheduler tick pulls from the registry. The worker
// pool bounds the actual fetch fan-out.
const refreshBatchSize = 100

type Scheduler struct {
	feedRepo         database.FeedRepository
	itemRepo         database.ItemRepository
	httpClient       *http.Client
	parser           *rss.Parser
	classifier       *rss.Classifier
	contentExtractor *rss.ContentExtractor
	userAgent        string
	interval         time.Duration
	refreshInterval  time.Duration
	fetchTimeout     time.Duration
	workerCount      int
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	taskQueue        chan TaskInterface
}

func NewScheduler(feedRepo database.FeedRepository, itemRepo database.ItemRepository,
	httpClient *http.Client, parser *rss.Parser, classifier *rss.Classifier,
	contentExtractor *rss.ContentExtractor) TaskSchedulerInterface {

	ctx, cancel := context.WithCancel(context.Background())
	c := cfg.Get()

	return &Scheduler{
		feedRepo:         feedRepo,
		itemRepo:         itemRepo,
		httpClient:       httpClient,
		parser:           parser,
		classifier:       classifier,
		contentExtractor: contentExtractor,
		userAgent:        c.UserAgent,
		interval:         time.Duration(c.SchedulerInterval) * time.Second,
		refreshInterval:  time.Duration(c.FeedRefreshInterval) * time.Second,
		fetchTimeout:     time.Duration(c.FeedFetchTimeout) * time.Second,
		workerCount:      c.WorkerCount,
		ctx:              ctx,
		cancel:           cancel,
		taskQueue:        make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// EnqueueFeedRefresh schedules an immediate fetch of one feed, bypassing its
// next-fetch time. Used by the on-demand refresh endpoint.
func (s *Scheduler) EnqueueFeedRefresh(feed database.Feed) error {
	return s.EnqueueTask(s.newProcessFeedTask(feed))
}

// EnqueueAllFeedsRefresh schedules an immediate fetch of every enabled feed
// and returns how many were enqueued.
func (s *Scheduler) EnqueueAllFeedsRefresh() (int, error) {
	feeds, err := s.feedRepo.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to list feeds: %w", err)
	}

	enqueued := 0
	for _, feed := range feeds {
		if !feed.Enabled {
			continue
		}
		if err := s.EnqueueFeedRefresh(feed); err != nil {
			slog.Warn("Failed to enqueue feed refresh", "feed", feed.Name, "error", err)
			continue
		}
		enqueued++
	}

	return enqueued, nil
}

func (s *Scheduler) enqueueTasks() {
	feeds, err := s.feedRepo.GetDueForRefresh(refreshBatchSize)
	if err != nil {
		slog.Error("Failed to load feeds due for refresh", "error", err)
		return
	}

	if len(feeds) > 0 {
		slog.Debug("Scheduling feed refreshes", "count", len(feeds))
		for _, feed := range feeds {
			if err := s.EnqueueTask(s.newProcessFeedTask(feed)); err != nil {
				slog.Warn("Failed to enqueue ProcessFeedTask", "feed", feed.Name, "error", err)
			}
		}
	}

	extractTask := NewExtractContentTask(s.httpClient, s.contentExtractor, s.itemRepo, s.userAgent, s.fetchTimeout)
	if err := s.EnqueueTask(extractTask); err != nil {
		slog.Warn("Failed to enqueue ExtractContentTask", "error", err)
	}
}

func (s *Scheduler) newProcessFeedTask(feed database.Feed) *ProcessFeedTask {
	return NewProcessFeedTask(feed, s.httpClient, s.parser, s.classifier,
		s.feedRepo, s.itemRepo, s.userAgent, s.fetchTimeout, s.refreshInterval)
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		return
	}

	slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

	if !task.CanRetry() {
		slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		return
	}

	task.IncrementRetryCount()
	retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
	if retryDelay > 30*time.Second {
		retryDelay = 30 * time.Second
	}

	slog.Warn("Task retry scheduled", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

	go func() {
		time.Sleep(retryDelay)
		select {
		case <-s.ctx.Done():
			slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
		default:
			if retryErr := s.EnqueueTask(task); retryErr != nil {
				slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
			}
		}
	}()
}
