package rss

import (
	"time"
)

// Metadata describes the feed itself, taken from the channel element.
type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
	PublishedAt *time.Time
}

// Item is one parsed feed entry before classification and persistence.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Content     string
	PublishedAt time.Time
	Categories  []string
}

// Classification is the metadata derived from an item's text.
type Classification struct {
	Severity  string
	Tags      []string
	CVEs      []string
	Products  []string
	CVSSScore *float64
}
