package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/rss"
)

type ProcessFeedTask struct {
	Task
	Feed            database.Feed
	httpClient      *http.Client
	parser          *rss.Parser
	classifier      *rss.Classifier
	feedRepo        database.FeedRepository
	itemRepo        database.ItemRepository
	userAgent       string
	fetchTimeout    time.Duration
	refreshInterval time.Duration
}

func NewProcessFeedTask(feed database.Feed, httpClient *http.Client, parser *rss.Parser,
	classifier *rss.Classifier, feedRepo database.FeedRepository, itemRepo database.ItemRepository,
	userAgent string, fetchTimeout, refreshInterval time.Duration) *ProcessFeedTask {

	return &ProcessFeedTask{
		Task:            NewTask(TaskTypeProcessFeed, feed.ID),
		Feed:            feed,
		httpClient:      httpClient,
		parser:          parser,
		classifier:      classifier,
		feedRepo:        feedRepo,
		itemRepo:        itemRepo,
		userAgent:       userAgent,
		fetchTimeout:    fetchTimeout,
		refreshInterval: refreshInterval,
	}
}

func (t *ProcessFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.Feed.Enabled {
		slog.Debug("Feed disabled, skipping", "feed", t.Feed.Name)
		return nil
	}

	nextFetch := time.Now().UTC().Add(t.refreshInterval)

	data, err := t.fetchFeed(ctx, t.Feed.URL)
	if err != nil {
		return t.recordFetchFailure(fmt.Errorf("failed to fetch feed: %w", err), nextFetch)
	}

	_, items, err := t.parser.Run(data)
	if err != nil {
		return t.recordFetchFailure(fmt.Errorf("failed to parse feed: %w", err), nextFetch)
	}

	duplicateCount := 0
	newCount := 0

	for _, item := range items {
		if item.Link == "" {
			continue
		}

		exists, err := t.itemRepo.Exists(item.Link)
		if err != nil {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}
		if exists {
			duplicateCount++
			continue
		}

		if err := t.itemRepo.Insert(t.buildItem(item)); err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		newCount++
	}

	if err := t.feedRepo.MarkFetched(t.Feed.ID, "", nextFetch); err != nil {
		return fmt.Errorf("failed to update feed fetch status: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.Feed.Name,
		"duration", t.GetDuration(),
		"total", len(items),
		"duplicates", duplicateCount,
		"new", newCount)

	return nil
}

// recordFetchFailure stores the error on the feed itself. Upstream fetch and
// parse failures are not retried; the feed waits for its next scheduled run.
func (t *ProcessFeedTask) recordFetchFailure(cause error, nextFetch time.Time) error {
	slog.Warn("Feed fetch failed", "feed", t.Feed.Name, "url", t.Feed.URL, "error", cause)

	if err := t.feedRepo.MarkFetched(t.Feed.ID, cause.Error(), nextFetch); err != nil {
		return fmt.Errorf("failed to record feed fetch error: %w", err)
	}

	return nil
}

func (t *ProcessFeedTask) buildItem(item rss.Item) database.FeedItem {
	classification := t.classifier.Run(item)

	return database.FeedItem{
		FeedID:                  t.Feed.ID,
		GUID:                    item.GUID,
		Link:                    item.Link,
		Title:                   item.Title,
		Description:             item.Description,
		Content:                 item.Content,
		PublishedAt:             item.PublishedAt,
		Severity:                classification.Severity,
		Tags:                    classification.Tags,
		CVEs:                    classification.CVEs,
		Products:                classification.Products,
		CVSSScore:               classification.CVSSScore,
		ContentExtractionStatus: database.ExtractionStatusPending,
	}
}

func (t *ProcessFeedTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, t.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
