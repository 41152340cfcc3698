package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/rss"
)

// Items picked up per extraction run. Extraction is best-effort enrichment,
// so a small batch per scheduler tick keeps outbound traffic bounded.
const extractionBatchSize = 20

type ExtractContentTask struct {
	Task
	httpClient       *http.Client
	contentExtractor *rss.ContentExtractor
	itemRepo         database.ItemRepository
	userAgent        string
	fetchTimeout     time.Duration
}

func NewExtractContentTask(httpClient *http.Client, contentExtractor *rss.ContentExtractor,
	itemRepo database.ItemRepository, userAgent string, fetchTimeout time.Duration) *ExtractContentTask {

	return &ExtractContentTask{
		Task:             NewTask(TaskTypeExtractContent, ""),
		httpClient:       httpClient,
		contentExtractor: contentExtractor,
		itemRepo:         itemRepo,
		userAgent:        userAgent,
		fetchTimeout:     fetchTimeout,
	}
}

func (t *ExtractContentTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	items, err := t.itemRepo.GetItemsForExtraction(extractionBatchSize)
	if err != nil {
		return fmt.Errorf("failed to get items for content extraction: %w", err)
	}

	if len(items) == 0 {
		slog.Debug("No items need content extraction")
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, item := range items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := t.extractContentForItem(ctx, item); err != nil {
			slog.Error("Failed to extract content for item", "item_id", item.ID, "url", item.Link, "error", err)
			errorCount++

			now := time.Now().UTC()
			if updateErr := t.itemRepo.UpdateExtractionStatus(item.ID, database.ExtractionStatusFailed, &now, err.Error()); updateErr != nil {
				slog.Error("Failed to update content extraction status", "item_id", item.ID, "error", updateErr)
			}
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *ExtractContentTask) extractContentForItem(ctx context.Context, item database.ItemForExtraction) error {
	if item.Link == "" {
		return fmt.Errorf("item has no link")
	}

	data, err := t.fetchArticle(ctx, item.Link)
	if err != nil {
		return fmt.Errorf("failed to fetch article: %w", err)
	}

	content, err := t.contentExtractor.Run(data, item.Link)
	if err != nil {
		return fmt.Errorf("failed to extract content: %w", err)
	}

	now := time.Now().UTC()
	if err := t.itemRepo.UpdateExtractedContentAndStatus(item.ID, content, database.ExtractionStatusSuccess, &now, ""); err != nil {
		return fmt.Errorf("failed to update extracted content: %w", err)
	}

	return nil
}

func (t *ExtractContentTask) fetchArticle(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, t.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
