package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/secboard/secboard/app/ingest"
)

// ImportFile accepts a multipart CSV upload for the source named in the
// path and returns the import summary.
func (h *Handler) ImportFile(c *gin.Context) {
	source := c.Param("source")
	importer, ok := h.importers[source]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown import source: " + source})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'file' form field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	summary, err := importer.Import(content, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, ingest.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Import failed", "source", source, "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ListIngestionLogs(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 50, 500)

	logs, err := h.logRepo.List(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_ingestion_logs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": len(logs),
	})
}

func (h *Handler) GetIngestionLog(c *gin.Context) {
	id := c.Param("id")

	log, err := h.logRepo.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_ingestion_log", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingestion log not found"})
		return
	}

	c.JSON(http.StatusOK, log)
}

func parseLimit(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
